package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"learndeck/internal/common"
	"learndeck/internal/domain/model"
)

type SandboxTaskRepository interface {
	Create(ctx context.Context, task *model.SandboxTask) error
	Update(ctx context.Context, task *model.SandboxTask) error
	FindByID(ctx context.Context, id string) (*model.SandboxTask, error)
	List(ctx context.Context) ([]model.SandboxTask, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type pgSandboxTaskRepository struct {
	db *sqlx.DB
}

func NewPgSandboxTaskRepository(db *sqlx.DB) SandboxTaskRepository {
	return &pgSandboxTaskRepository{db: db}
}

func (r *pgSandboxTaskRepository) Create(ctx context.Context, t *model.SandboxTask) error {
	query := `INSERT INTO sandbox_tasks (id, title, description, language, initial_code, solution, difficulty, tags, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.Language, t.InitialCode, t.Solution, t.Difficulty, t.Tags, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgSandboxTaskRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSandboxTaskRepository) Update(ctx context.Context, t *model.SandboxTask) error {
	query := `UPDATE sandbox_tasks
	          SET title = $1, description = $2, language = $3, initial_code = $4,
	              solution = $5, difficulty = $6, tags = $7, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.Language, t.InitialCode, t.Solution, t.Difficulty, t.Tags, t.ID)
	if err != nil {
		return fmt.Errorf("pgSandboxTaskRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgSandboxTaskRepository) FindByID(ctx context.Context, id string) (*model.SandboxTask, error) {
	task := &model.SandboxTask{}
	err := r.db.GetContext(ctx, task, `SELECT * FROM sandbox_tasks WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSandboxTaskRepository.FindByID: %w", err)
	}
	return task, nil
}

func (r *pgSandboxTaskRepository) List(ctx context.Context) ([]model.SandboxTask, error) {
	tasks := []model.SandboxTask{}
	query := `SELECT * FROM sandbox_tasks ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("pgSandboxTaskRepository.List: %w", err)
	}
	return tasks, nil
}

func (r *pgSandboxTaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sandbox_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgSandboxTaskRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgSandboxTaskRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sandbox_tasks`); err != nil {
		return fmt.Errorf("pgSandboxTaskRepository.DeleteAll: %w", err)
	}
	return nil
}

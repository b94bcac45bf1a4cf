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

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, id, content string) (*model.Note, error)
	FindByID(ctx context.Context, id string) (*model.Note, error)
	ListAnnotated(ctx context.Context) ([]model.Note, error)
	ListByLesson(ctx context.Context, lessonID string) ([]model.Note, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

type pgNoteRepository struct {
	db *sqlx.DB
}

func NewPgNoteRepository(db *sqlx.DB) NoteRepository {
	return &pgNoteRepository{db: db}
}

func (r *pgNoteRepository) Create(ctx context.Context, n *model.Note) error {
	query := `INSERT INTO notes (id, lesson_id, content, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, n.ID, n.LessonID, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgNoteRepository.Create: %w", err)
	}
	return nil
}

func (r *pgNoteRepository) Update(ctx context.Context, id, content string) (*model.Note, error) {
	note := &model.Note{}
	query := `UPDATE notes SET content = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
	          RETURNING id, lesson_id, content, created_at, updated_at`
	err := r.db.GetContext(ctx, note, query, content, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgNoteRepository.Update: %w", err)
	}
	return note, nil
}

func (r *pgNoteRepository) FindByID(ctx context.Context, id string) (*model.Note, error) {
	note := &model.Note{}
	err := r.db.GetContext(ctx, note, `SELECT * FROM notes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgNoteRepository.FindByID: %w", err)
	}
	return note, nil
}

func (r *pgNoteRepository) ListAnnotated(ctx context.Context) ([]model.Note, error) {
	notes := []model.Note{}
	query := `
		SELECT n.*, l.title AS lesson_title, c.title AS course_title
		FROM notes n
		JOIN lessons l ON l.id = n.lesson_id
		JOIN chapters ch ON ch.id = l.chapter_id
		JOIN courses c ON c.id = ch.course_id
		ORDER BY n.created_at DESC`
	if err := r.db.SelectContext(ctx, &notes, query); err != nil {
		return nil, fmt.Errorf("pgNoteRepository.ListAnnotated: %w", err)
	}
	return notes, nil
}

func (r *pgNoteRepository) ListByLesson(ctx context.Context, lessonID string) ([]model.Note, error) {
	notes := []model.Note{}
	query := `SELECT * FROM notes WHERE lesson_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &notes, query, lessonID); err != nil {
		return nil, fmt.Errorf("pgNoteRepository.ListByLesson: %w", err)
	}
	return notes, nil
}

func (r *pgNoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgNoteRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgNoteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("pgNoteRepository.DeleteAll: %w", err)
	}
	return nil
}

func (r *pgNoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notes`); err != nil {
		return 0, fmt.Errorf("pgNoteRepository.Count: %w", err)
	}
	return count, nil
}

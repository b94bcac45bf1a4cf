package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"learndeck/internal/domain/model"
)

// SandboxSubmissionRepository is append-only: submissions are never updated,
// and rows vanish only through the task's cascading delete.
type SandboxSubmissionRepository interface {
	Create(ctx context.Context, submission *model.SandboxSubmission) error
	ListByTask(ctx context.Context, taskID string) ([]model.SandboxSubmission, error)
	StatsByTask(ctx context.Context) (map[string]model.TaskSubmissionStats, error)
	StatsForTask(ctx context.Context, taskID string) (model.TaskSubmissionStats, error)
}

type pgSandboxSubmissionRepository struct {
	db *sqlx.DB
}

func NewPgSandboxSubmissionRepository(db *sqlx.DB) SandboxSubmissionRepository {
	return &pgSandboxSubmissionRepository{db: db}
}

func (r *pgSandboxSubmissionRepository) Create(ctx context.Context, s *model.SandboxSubmission) error {
	query := `INSERT INTO sandbox_submissions (id, task_id, code, is_correct, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.TaskID, s.Code, s.IsCorrect, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgSandboxSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSandboxSubmissionRepository) ListByTask(ctx context.Context, taskID string) ([]model.SandboxSubmission, error) {
	submissions := []model.SandboxSubmission{}
	query := `SELECT * FROM sandbox_submissions WHERE task_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &submissions, query, taskID); err != nil {
		return nil, fmt.Errorf("pgSandboxSubmissionRepository.ListByTask: %w", err)
	}
	return submissions, nil
}

func (r *pgSandboxSubmissionRepository) StatsByTask(ctx context.Context) (map[string]model.TaskSubmissionStats, error) {
	query := `
		SELECT task_id,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE is_correct) AS correct
		FROM sandbox_submissions
		GROUP BY task_id`

	rows := []model.TaskSubmissionStats{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("pgSandboxSubmissionRepository.StatsByTask: %w", err)
	}

	stats := make(map[string]model.TaskSubmissionStats, len(rows))
	for _, s := range rows {
		stats[s.TaskID] = s
	}
	return stats, nil
}

func (r *pgSandboxSubmissionRepository) StatsForTask(ctx context.Context, taskID string) (model.TaskSubmissionStats, error) {
	stats := model.TaskSubmissionStats{TaskID: taskID}
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE is_correct) AS correct
		FROM sandbox_submissions
		WHERE task_id = $1`
	row := r.db.QueryRowxContext(ctx, query, taskID)
	if err := row.Scan(&stats.Total, &stats.Correct); err != nil {
		return stats, fmt.Errorf("pgSandboxSubmissionRepository.StatsForTask: %w", err)
	}
	return stats, nil
}

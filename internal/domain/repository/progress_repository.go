package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"learndeck/internal/domain/model"
)

type ProgressRepository interface {
	Upsert(ctx context.Context, progress *model.Progress) (*model.Progress, error)
	ListAll(ctx context.Context) ([]model.Progress, error)
	CountLessons(ctx context.Context) (int, error)
	CountCompleted(ctx context.Context) (int, error)
	CountCourses(ctx context.Context) (int, error)
	CourseProgress(ctx context.Context) ([]model.CourseProgress, error)
	DeleteAll(ctx context.Context) error
}

type pgProgressRepository struct {
	db *sqlx.DB
}

func NewPgProgressRepository(db *sqlx.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

// Upsert keeps a single progress row per lesson; toggling completion updates
// it in place.
func (r *pgProgressRepository) Upsert(ctx context.Context, p *model.Progress) (*model.Progress, error) {
	result := &model.Progress{}
	query := `
		INSERT INTO progress (id, lesson_id, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (lesson_id)
		DO UPDATE SET completed = EXCLUDED.completed, updated_at = CURRENT_TIMESTAMP
		RETURNING id, lesson_id, completed, created_at, updated_at`
	err := r.db.GetContext(ctx, result, query, p.ID, p.LessonID, p.Completed, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgProgressRepository) ListAll(ctx context.Context) ([]model.Progress, error) {
	records := []model.Progress{}
	if err := r.db.SelectContext(ctx, &records, `SELECT * FROM progress ORDER BY updated_at DESC`); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListAll: %w", err)
	}
	return records, nil
}

func (r *pgProgressRepository) CountLessons(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM lessons`); err != nil {
		return 0, fmt.Errorf("pgProgressRepository.CountLessons: %w", err)
	}
	return count, nil
}

func (r *pgProgressRepository) CountCompleted(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM progress WHERE completed`); err != nil {
		return 0, fmt.Errorf("pgProgressRepository.CountCompleted: %w", err)
	}
	return count, nil
}

func (r *pgProgressRepository) CountCourses(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, fmt.Errorf("pgProgressRepository.CountCourses: %w", err)
	}
	return count, nil
}

// CourseProgress returns per-course completion plus the most recently touched
// lesson, used by the progress summary page.
func (r *pgProgressRepository) CourseProgress(ctx context.Context) ([]model.CourseProgress, error) {
	query := `
		SELECT c.id AS course_id, c.title,
		       COUNT(DISTINCT l.id) FILTER (WHERE p.completed) AS completed,
		       COUNT(DISTINCT l.id) AS total,
		       MAX(p.updated_at) AS last_accessed,
		       (SELECT p2.lesson_id
		        FROM progress p2
		        JOIN lessons l2 ON l2.id = p2.lesson_id
		        JOIN chapters ch2 ON ch2.id = l2.chapter_id
		        WHERE ch2.course_id = c.id
		        ORDER BY p2.updated_at DESC
		        LIMIT 1) AS last_accessed_lesson_id
		FROM courses c
		LEFT JOIN chapters ch ON ch.course_id = c.id
		LEFT JOIN lessons l ON l.chapter_id = ch.id
		LEFT JOIN progress p ON p.lesson_id = l.id
		GROUP BY c.id
		ORDER BY c.created_at DESC`

	rows := []model.CourseProgress{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.CourseProgress: %w", err)
	}
	return rows, nil
}

func (r *pgProgressRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress`); err != nil {
		return fmt.Errorf("pgProgressRepository.DeleteAll: %w", err)
	}
	return nil
}

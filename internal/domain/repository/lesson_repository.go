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

type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	Update(ctx context.Context, lesson *model.Lesson) error
	FindByID(ctx context.Context, id string) (*model.Lesson, error)
	FindDetail(ctx context.Context, id string) (*model.LessonDetail, error)
	ListByChapter(ctx context.Context, chapterID string) ([]model.Lesson, error)
	Delete(ctx context.Context, id string) error
}

type pgLessonRepository struct {
	db *sqlx.DB
}

func NewPgLessonRepository(db *sqlx.DB) LessonRepository {
	return &pgLessonRepository{db: db}
}

func (r *pgLessonRepository) Create(ctx context.Context, l *model.Lesson) error {
	query := `INSERT INTO lessons (id, chapter_id, title, content, video_url, position, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.ChapterID, l.Title, l.Content, l.VideoURL, l.Position, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgLessonRepository.Create: %w", err)
	}
	return nil
}

func (r *pgLessonRepository) Update(ctx context.Context, l *model.Lesson) error {
	query := `UPDATE lessons SET title = $1, content = $2, video_url = $3, position = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, l.Title, l.Content, l.VideoURL, l.Position, l.ID)
	if err != nil {
		return fmt.Errorf("pgLessonRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgLessonRepository) FindByID(ctx context.Context, id string) (*model.Lesson, error) {
	lesson := &model.Lesson{}
	query := `
		SELECT l.*, COALESCE(bool_or(p.completed), FALSE) AS completed
		FROM lessons l
		LEFT JOIN progress p ON p.lesson_id = l.id
		WHERE l.id = $1
		GROUP BY l.id`
	err := r.db.GetContext(ctx, lesson, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgLessonRepository.FindByID: %w", err)
	}
	return lesson, nil
}

func (r *pgLessonRepository) FindDetail(ctx context.Context, id string) (*model.LessonDetail, error) {
	detail := &model.LessonDetail{}
	query := `
		SELECT l.*, COALESCE(bool_or(p.completed), FALSE) AS completed,
		       ch.title AS chapter_title, c.id AS course_id, c.title AS course_title
		FROM lessons l
		JOIN chapters ch ON ch.id = l.chapter_id
		JOIN courses c ON c.id = ch.course_id
		LEFT JOIN progress p ON p.lesson_id = l.id
		WHERE l.id = $1
		GROUP BY l.id, ch.title, c.id, c.title`

	row := r.db.QueryRowxContext(ctx, query, id)
	err := row.Scan(
		&detail.ID, &detail.ChapterID, &detail.Title, &detail.Content, &detail.VideoURL,
		&detail.Position, &detail.CreatedAt, &detail.UpdatedAt, &detail.Completed,
		&detail.ChapterTitle, &detail.CourseID, &detail.CourseTitle,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgLessonRepository.FindDetail: %w", err)
	}
	return detail, nil
}

func (r *pgLessonRepository) ListByChapter(ctx context.Context, chapterID string) ([]model.Lesson, error) {
	lessons := []model.Lesson{}
	query := `
		SELECT l.*, COALESCE(bool_or(p.completed), FALSE) AS completed
		FROM lessons l
		LEFT JOIN progress p ON p.lesson_id = l.id
		WHERE l.chapter_id = $1
		GROUP BY l.id
		ORDER BY l.position ASC`
	if err := r.db.SelectContext(ctx, &lessons, query, chapterID); err != nil {
		return nil, fmt.Errorf("pgLessonRepository.ListByChapter: %w", err)
	}
	return lessons, nil
}

func (r *pgLessonRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgLessonRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

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

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id string) (*model.Course, error)
	FindBySlug(ctx context.Context, slug string) (*model.Course, error)
	List(ctx context.Context) ([]model.CourseSummary, error)
	Search(ctx context.Context, term string) ([]model.Course, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error

	CreateChapter(ctx context.Context, chapter *model.Chapter) error
	UpdateChapter(ctx context.Context, chapter *model.Chapter) error
	FindChapterByID(ctx context.Context, id string) (*model.Chapter, error)
	ListChapters(ctx context.Context, courseID string) ([]model.Chapter, error)
	DeleteChapter(ctx context.Context, id string) error
}

type pgCourseRepository struct {
	db *sqlx.DB
}

func NewPgCourseRepository(db *sqlx.DB) CourseRepository {
	return &pgCourseRepository{db: db}
}

func (r *pgCourseRepository) Create(ctx context.Context, c *model.Course) error {
	query := `INSERT INTO courses (id, title, slug, description, tags, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Title, c.Slug, c.Description, c.Tags, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgCourseRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) Update(ctx context.Context, c *model.Course) error {
	query := `UPDATE courses SET title = $1, slug = $2, description = $3, tags = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, c.Title, c.Slug, c.Description, c.Tags, c.ID)
	if err != nil {
		return fmt.Errorf("pgCourseRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	course := &model.Course{}
	err := r.db.GetContext(ctx, course, `SELECT * FROM courses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCourseRepository.FindByID: %w", err)
	}
	return course, nil
}

func (r *pgCourseRepository) FindBySlug(ctx context.Context, slug string) (*model.Course, error) {
	course := &model.Course{}
	err := r.db.GetContext(ctx, course, `SELECT * FROM courses WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCourseRepository.FindBySlug: %w", err)
	}
	return course, nil
}

func (r *pgCourseRepository) List(ctx context.Context) ([]model.CourseSummary, error) {
	query := `
		SELECT c.id, c.title, c.slug, c.description, c.tags, c.created_at, c.updated_at,
		       COUNT(DISTINCT ch.id) AS chapters_count,
		       COUNT(DISTINCT l.id) AS lessons_count,
		       COUNT(DISTINCT l.id) FILTER (WHERE p.completed) AS completed_lessons
		FROM courses c
		LEFT JOIN chapters ch ON ch.course_id = c.id
		LEFT JOIN lessons l ON l.chapter_id = ch.id
		LEFT JOIN progress p ON p.lesson_id = l.id
		GROUP BY c.id
		ORDER BY c.created_at DESC`

	summaries := []model.CourseSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("pgCourseRepository.List: %w", err)
	}
	return summaries, nil
}

func (r *pgCourseRepository) Search(ctx context.Context, term string) ([]model.Course, error) {
	query := `
		SELECT * FROM courses
		WHERE title ILIKE $1 OR description ILIKE $1 OR tags::text ILIKE $1
		ORDER BY created_at DESC`

	courses := []model.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("pgCourseRepository.Search: %w", err)
	}
	return courses, nil
}

func (r *pgCourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCourseRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCourseRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("pgCourseRepository.DeleteAll: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) CreateChapter(ctx context.Context, ch *model.Chapter) error {
	query := `INSERT INTO chapters (id, course_id, title, position, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, ch.ID, ch.CourseID, ch.Title, ch.Position, ch.CreatedAt, ch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgCourseRepository.CreateChapter: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) UpdateChapter(ctx context.Context, ch *model.Chapter) error {
	query := `UPDATE chapters SET title = $1, position = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, ch.Title, ch.Position, ch.ID)
	if err != nil {
		return fmt.Errorf("pgCourseRepository.UpdateChapter: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCourseRepository) FindChapterByID(ctx context.Context, id string) (*model.Chapter, error) {
	chapter := &model.Chapter{}
	err := r.db.GetContext(ctx, chapter, `SELECT * FROM chapters WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCourseRepository.FindChapterByID: %w", err)
	}
	return chapter, nil
}

func (r *pgCourseRepository) ListChapters(ctx context.Context, courseID string) ([]model.Chapter, error) {
	chapters := []model.Chapter{}
	query := `SELECT * FROM chapters WHERE course_id = $1 ORDER BY position ASC`
	if err := r.db.SelectContext(ctx, &chapters, query, courseID); err != nil {
		return nil, fmt.Errorf("pgCourseRepository.ListChapters: %w", err)
	}
	return chapters, nil
}

func (r *pgCourseRepository) DeleteChapter(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCourseRepository.DeleteChapter: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

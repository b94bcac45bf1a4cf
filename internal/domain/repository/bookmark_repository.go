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

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *model.Bookmark) error
	FindByLesson(ctx context.Context, lessonID string) (*model.Bookmark, error)
	ListAnnotated(ctx context.Context) ([]model.Bookmark, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

type pgBookmarkRepository struct {
	db *sqlx.DB
}

func NewPgBookmarkRepository(db *sqlx.DB) BookmarkRepository {
	return &pgBookmarkRepository{db: db}
}

func (r *pgBookmarkRepository) Create(ctx context.Context, b *model.Bookmark) error {
	query := `INSERT INTO bookmarks (id, lesson_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.LessonID, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgBookmarkRepository.Create: %w", err)
	}
	return nil
}

func (r *pgBookmarkRepository) FindByLesson(ctx context.Context, lessonID string) (*model.Bookmark, error) {
	bookmark := &model.Bookmark{}
	err := r.db.GetContext(ctx, bookmark, `SELECT * FROM bookmarks WHERE lesson_id = $1`, lessonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgBookmarkRepository.FindByLesson: %w", err)
	}
	return bookmark, nil
}

func (r *pgBookmarkRepository) ListAnnotated(ctx context.Context) ([]model.Bookmark, error) {
	bookmarks := []model.Bookmark{}
	query := `
		SELECT b.*, l.title AS lesson_title, c.id AS course_id, c.title AS course_title
		FROM bookmarks b
		JOIN lessons l ON l.id = b.lesson_id
		JOIN chapters ch ON ch.id = l.chapter_id
		JOIN courses c ON c.id = ch.course_id
		ORDER BY b.created_at DESC`
	if err := r.db.SelectContext(ctx, &bookmarks, query); err != nil {
		return nil, fmt.Errorf("pgBookmarkRepository.ListAnnotated: %w", err)
	}
	return bookmarks, nil
}

func (r *pgBookmarkRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgBookmarkRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBookmarkRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks`); err != nil {
		return fmt.Errorf("pgBookmarkRepository.DeleteAll: %w", err)
	}
	return nil
}

func (r *pgBookmarkRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookmarks`); err != nil {
		return 0, fmt.Errorf("pgBookmarkRepository.Count: %w", err)
	}
	return count, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"learndeck/internal/common"
	"learndeck/internal/domain/model"
	"learndeck/internal/domain/repository"
	"learndeck/internal/platform/cache"
)

type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	lessonRepo   repository.LessonRepository
	cache        *cache.Cache
}

func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, lessonRepo repository.LessonRepository, c *cache.Cache) *BookmarkService {
	return &BookmarkService{bookmarkRepo: bookmarkRepo, lessonRepo: lessonRepo, cache: c}
}

// CreateBookmark keeps at most one bookmark per lesson; bookmarking an
// already-bookmarked lesson returns the existing record.
func (s *BookmarkService) CreateBookmark(ctx context.Context, lessonID string) (*model.Bookmark, error) {
	if _, err := s.lessonRepo.FindByID(ctx, lessonID); err != nil {
		return nil, err
	}

	existing, err := s.bookmarkRepo.FindByLesson(ctx, lessonID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	bookmark := &model.Bookmark{
		ID:        uuid.NewString(),
		LessonID:  lessonID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return bookmark, nil
}

func (s *BookmarkService) ListBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	return s.bookmarkRepo.ListAnnotated(ctx)
}

func (s *BookmarkService) DeleteBookmark(ctx context.Context, id string) error {
	if err := s.bookmarkRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *BookmarkService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, progressOverviewCacheKey)
	}
}

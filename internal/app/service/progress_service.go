package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learndeck/internal/domain/model"
	"learndeck/internal/domain/repository"
	"learndeck/internal/platform/cache"
)

const (
	progressOverviewCacheKey = "progress:overview"
	progressSummaryCacheKey  = "progress:summary"
)

type ProgressService struct {
	progressRepo repository.ProgressRepository
	lessonRepo   repository.LessonRepository
	noteRepo     repository.NoteRepository
	bookmarkRepo repository.BookmarkRepository
	cache        *cache.Cache
	logger       *zap.Logger
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	lessonRepo repository.LessonRepository,
	noteRepo repository.NoteRepository,
	bookmarkRepo repository.BookmarkRepository,
	c *cache.Cache,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		lessonRepo:   lessonRepo,
		noteRepo:     noteRepo,
		bookmarkRepo: bookmarkRepo,
		cache:        c,
		logger:       logger,
	}
}

// SetCompletion toggles a lesson's completion, keeping one progress row per
// lesson.
func (s *ProgressService) SetCompletion(ctx context.Context, lessonID string, completed bool) (*model.Progress, error) {
	if _, err := s.lessonRepo.FindByID(ctx, lessonID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	progress, err := s.progressRepo.Upsert(ctx, &model.Progress{
		ID:        uuid.NewString(),
		LessonID:  lessonID,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, progressOverviewCacheKey, progressSummaryCacheKey, courseListCacheKey)
	}
	return progress, nil
}

func (s *ProgressService) Overview(ctx context.Context) (*model.ProgressOverview, error) {
	if s.cache != nil {
		cached := &model.ProgressOverview{}
		if err := s.cache.GetJSON(ctx, progressOverviewCacheKey, cached); err == nil {
			return cached, nil
		}
	}

	totalCourses, err := s.progressRepo.CountCourses(ctx)
	if err != nil {
		return nil, err
	}
	totalLessons, err := s.progressRepo.CountLessons(ctx)
	if err != nil {
		return nil, err
	}
	completedLessons, err := s.progressRepo.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}
	totalNotes, err := s.noteRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBookmarks, err := s.bookmarkRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	overview := &model.ProgressOverview{
		TotalCourses:       totalCourses,
		TotalLessons:       totalLessons,
		CompletedLessons:   completedLessons,
		TotalNotes:         totalNotes,
		TotalBookmarks:     totalBookmarks,
		ProgressPercentage: percentage(completedLessons, totalLessons),
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, progressOverviewCacheKey, overview); err != nil {
			s.logger.Warn("failed to cache progress overview", zap.Error(err))
		}
	}
	return overview, nil
}

func (s *ProgressService) Summary(ctx context.Context) ([]model.CourseProgress, error) {
	if s.cache != nil {
		var cached []model.CourseProgress
		if err := s.cache.GetJSON(ctx, progressSummaryCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := s.progressRepo.CourseProgress(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Progress = percentage(rows[i].Completed, rows[i].Total)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, progressSummaryCacheKey, rows); err != nil {
			s.logger.Warn("failed to cache progress summary", zap.Error(err))
		}
	}
	return rows, nil
}

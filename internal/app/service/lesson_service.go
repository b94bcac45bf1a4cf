package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"learndeck/internal/common"
	"learndeck/internal/domain/model"
	"learndeck/internal/domain/repository"
	"learndeck/internal/markdown"
	"learndeck/internal/platform/cache"
)

type LessonService struct {
	lessonRepo repository.LessonRepository
	courseRepo repository.CourseRepository
	renderer   *markdown.Renderer
	cache      *cache.Cache
	logger     *zap.Logger
}

func NewLessonService(
	lessonRepo repository.LessonRepository,
	courseRepo repository.CourseRepository,
	renderer *markdown.Renderer,
	c *cache.Cache,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		lessonRepo: lessonRepo,
		courseRepo: courseRepo,
		renderer:   renderer,
		cache:      c,
		logger:     logger,
	}
}

type CreateLessonRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	VideoURL *string `json:"videoUrl"`
	Position int     `json:"position"`
}

func (r CreateLessonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Position, validation.Min(0)),
	)
}

type UpdateLessonRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	VideoURL *string `json:"videoUrl"`
	Position *int    `json:"position"`
}

func (s *LessonService) CreateLesson(ctx context.Context, chapterID string, req CreateLessonRequest) (*model.Lesson, error) {
	if err := req.Validate(); err != nil {
		return nil, common.ErrValidation
	}
	if _, err := s.courseRepo.FindChapterByID(ctx, chapterID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lesson := &model.Lesson{
		ID:        uuid.NewString(),
		ChapterID: chapterID,
		Title:     req.Title,
		Content:   req.Content,
		VideoURL:  req.VideoURL,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return lesson, nil
}

func (s *LessonService) UpdateLesson(ctx context.Context, id string, req UpdateLessonRequest) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Content != nil {
		lesson.Content = *req.Content
	}
	if req.VideoURL != nil {
		lesson.VideoURL = req.VideoURL
	}
	if req.Position != nil {
		lesson.Position = *req.Position
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// GetLesson returns the lesson with its markdown rendered to HTML and the
// chapter/course context for breadcrumbs.
func (s *LessonService) GetLesson(ctx context.Context, id string) (*model.LessonDetail, error) {
	detail, err := s.lessonRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.Render(detail.Content)
	if err != nil {
		s.logger.Warn("failed to render lesson content", zap.String("lesson_id", id), zap.Error(err))
	} else {
		detail.ContentHTML = html
	}
	return detail, nil
}

func (s *LessonService) DeleteLesson(ctx context.Context, id string) error {
	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *LessonService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, courseListCacheKey, progressOverviewCacheKey, progressSummaryCacheKey)
	}
}

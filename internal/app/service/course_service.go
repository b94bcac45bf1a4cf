package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"learndeck/internal/common"
	"learndeck/internal/domain/model"
	"learndeck/internal/domain/repository"
	"learndeck/internal/platform/cache"
)

const courseListCacheKey = "courses:list"

type CourseService struct {
	courseRepo repository.CourseRepository
	lessonRepo repository.LessonRepository
	cache      *cache.Cache
	logger     *zap.Logger
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	lessonRepo repository.LessonRepository,
	c *cache.Cache,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{courseRepo: courseRepo, lessonRepo: lessonRepo, cache: c, logger: logger}
}

type CreateCourseRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (r CreateCourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Description, validation.Required),
	)
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

type CreateChapterRequest struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func (r CreateChapterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Position, validation.Min(0)),
	)
}

type UpdateChapterRequest struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}

func (s *CourseService) CreateCourse(ctx context.Context, req CreateCourseRequest) (*model.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, common.ErrValidation
	}

	now := time.Now().UTC()
	course := &model.Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if course.Tags == nil {
		course.Tags = model.StringList{}
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return course, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, id string, req UpdateCourseRequest) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
		course.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Tags != nil {
		course.Tags = req.Tags
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return course, nil
}

// GetCourse returns the course with its ordered chapters and lessons,
// per-lesson completion included.
func (s *CourseService) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chapters, err := s.courseRepo.ListChapters(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range chapters {
		lessons, err := s.lessonRepo.ListByChapter(ctx, chapters[i].ID)
		if err != nil {
			return nil, err
		}
		chapters[i].Lessons = lessons
	}
	course.Chapters = chapters
	return course, nil
}

func (s *CourseService) ListCourses(ctx context.Context) ([]model.CourseSummary, error) {
	if s.cache != nil {
		var cached []model.CourseSummary
		if err := s.cache.GetJSON(ctx, courseListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	summaries, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].Progress = percentage(summaries[i].CompletedLessons, summaries[i].LessonsCount)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, courseListCacheKey, summaries); err != nil {
			s.logger.Warn("failed to cache course list", zap.Error(err))
		}
	}
	return summaries, nil
}

func (s *CourseService) SearchCourses(ctx context.Context, term string) ([]model.Course, error) {
	if term == "" {
		return []model.Course{}, nil
	}
	return s.courseRepo.Search(ctx, term)
}

func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CourseService) CreateChapter(ctx context.Context, courseID string, req CreateChapterRequest) (*model.Chapter, error) {
	if err := req.Validate(); err != nil {
		return nil, common.ErrValidation
	}
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	chapter := &model.Chapter{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		Title:     req.Title,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.courseRepo.CreateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return chapter, nil
}

func (s *CourseService) UpdateChapter(ctx context.Context, id string, req UpdateChapterRequest) (*model.Chapter, error) {
	chapter, err := s.courseRepo.FindChapterByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Position != nil {
		chapter.Position = *req.Position
	}

	if err := s.courseRepo.UpdateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *CourseService) GetChapter(ctx context.Context, id string) (*model.Chapter, error) {
	chapter, err := s.courseRepo.FindChapterByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessonRepo.ListByChapter(ctx, id)
	if err != nil {
		return nil, err
	}
	chapter.Lessons = lessons
	return chapter, nil
}

func (s *CourseService) DeleteChapter(ctx context.Context, id string) error {
	if err := s.courseRepo.DeleteChapter(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, courseListCacheKey, progressOverviewCacheKey, progressSummaryCacheKey)
	}
}

func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(completed)/float64(total)*100 + 0.5)
}

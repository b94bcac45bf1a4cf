package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"learndeck/internal/common"
	"learndeck/internal/domain/model"
	"learndeck/internal/domain/repository"
	"learndeck/internal/platform/cache"
)

// DataService implements full export, import and wipe of the platform's
// content. The sandbox demo tables are untouched; they belong to the seeding
// routine.
type DataService struct {
	courseRepo   repository.CourseRepository
	lessonRepo   repository.LessonRepository
	noteRepo     repository.NoteRepository
	bookmarkRepo repository.BookmarkRepository
	progressRepo repository.ProgressRepository
	taskRepo     repository.SandboxTaskRepository
	cache        *cache.Cache
	logger       *zap.Logger
}

func NewDataService(
	courseRepo repository.CourseRepository,
	lessonRepo repository.LessonRepository,
	noteRepo repository.NoteRepository,
	bookmarkRepo repository.BookmarkRepository,
	progressRepo repository.ProgressRepository,
	taskRepo repository.SandboxTaskRepository,
	c *cache.Cache,
	logger *zap.Logger,
) *DataService {
	return &DataService{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		noteRepo:     noteRepo,
		bookmarkRepo: bookmarkRepo,
		progressRepo: progressRepo,
		taskRepo:     taskRepo,
		cache:        c,
		logger:       logger,
	}
}

// ExportDocument is the portable dump format.
type ExportDocument struct {
	ExportedAt time.Time           `json:"exported_at"`
	Courses    []model.Course      `json:"courses"`
	Notes      []model.Note        `json:"notes"`
	Bookmarks  []model.Bookmark    `json:"bookmarks"`
	Progress   []model.Progress    `json:"progress"`
	Tasks      []model.SandboxTask `json:"sandbox_tasks"`
}

func (s *DataService) Export(ctx context.Context) (*ExportDocument, error) {
	summaries, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(summaries))
	for _, summary := range summaries {
		course := summary.Course
		chapters, err := s.courseRepo.ListChapters(ctx, course.ID)
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
		courses = append(courses, course)
	}

	notes, err := s.noteRepo.ListAnnotated(ctx)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.bookmarkRepo.ListAnnotated(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ExportDocument{
		ExportedAt: time.Now().UTC(),
		Courses:    courses,
		Notes:      notes,
		Bookmarks:  bookmarks,
		Progress:   progress,
		Tasks:      tasks,
	}, nil
}

// Import recreates courses and sandbox tasks from an export document with
// fresh IDs. Notes, bookmarks and progress reference lesson IDs from the
// source system and are remapped onto the recreated lessons.
func (s *DataService) Import(ctx context.Context, doc *ExportDocument) error {
	if doc == nil || len(doc.Courses) == 0 && len(doc.Tasks) == 0 {
		return common.ErrValidation
	}

	now := time.Now().UTC()
	lessonIDMap := make(map[string]string)

	for _, source := range doc.Courses {
		course := &model.Course{
			ID:          uuid.NewString(),
			Title:       source.Title,
			Slug:        slug.Make(source.Title),
			Description: source.Description,
			Tags:        source.Tags,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if course.Tags == nil {
			course.Tags = model.StringList{}
		}
		if err := s.courseRepo.Create(ctx, course); err != nil {
			return err
		}

		for _, sourceChapter := range source.Chapters {
			chapter := &model.Chapter{
				ID:        uuid.NewString(),
				CourseID:  course.ID,
				Title:     sourceChapter.Title,
				Position:  sourceChapter.Position,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.courseRepo.CreateChapter(ctx, chapter); err != nil {
				return err
			}

			for _, sourceLesson := range sourceChapter.Lessons {
				lesson := &model.Lesson{
					ID:        uuid.NewString(),
					ChapterID: chapter.ID,
					Title:     sourceLesson.Title,
					Content:   sourceLesson.Content,
					VideoURL:  sourceLesson.VideoURL,
					Position:  sourceLesson.Position,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := s.lessonRepo.Create(ctx, lesson); err != nil {
					return err
				}
				lessonIDMap[sourceLesson.ID] = lesson.ID
			}
		}
	}

	for _, sourceNote := range doc.Notes {
		lessonID, ok := lessonIDMap[sourceNote.LessonID]
		if !ok {
			continue
		}
		note := &model.Note{
			ID:        uuid.NewString(),
			LessonID:  lessonID,
			Content:   sourceNote.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			return err
		}
	}

	for _, sourceBookmark := range doc.Bookmarks {
		lessonID, ok := lessonIDMap[sourceBookmark.LessonID]
		if !ok {
			continue
		}
		bookmark := &model.Bookmark{
			ID:        uuid.NewString(),
			LessonID:  lessonID,
			CreatedAt: now,
		}
		if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
			return err
		}
	}

	for _, sourceProgress := range doc.Progress {
		lessonID, ok := lessonIDMap[sourceProgress.LessonID]
		if !ok {
			continue
		}
		if _, err := s.progressRepo.Upsert(ctx, &model.Progress{
			ID:        uuid.NewString(),
			LessonID:  lessonID,
			Completed: sourceProgress.Completed,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
	}

	for _, sourceTask := range doc.Tasks {
		task := &model.SandboxTask{
			ID:          uuid.NewString(),
			Title:       sourceTask.Title,
			Description: sourceTask.Description,
			Language:    sourceTask.Language,
			InitialCode: sourceTask.InitialCode,
			Solution:    sourceTask.Solution,
			Difficulty:  sourceTask.Difficulty,
			Tags:        sourceTask.Tags,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if task.Tags == nil {
			task.Tags = model.StringList{}
		}
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return err
		}
	}

	s.invalidate(ctx)
	return nil
}

// Clear wipes all platform content. Deletion order follows the foreign keys,
// though course deletion already cascades through its hierarchy.
func (s *DataService) Clear(ctx context.Context) error {
	if err := s.progressRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.noteRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.bookmarkRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.courseRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.taskRepo.DeleteAll(ctx); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("platform content cleared")
	return nil
}

func (s *DataService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, courseListCacheKey, progressOverviewCacheKey, progressSummaryCacheKey)
	}
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"learndeck/internal/common"
	"learndeck/internal/domain/model"
	"learndeck/internal/domain/repository"
	"learndeck/internal/platform/cache"
)

type NoteService struct {
	noteRepo   repository.NoteRepository
	lessonRepo repository.LessonRepository
	cache      *cache.Cache
}

func NewNoteService(noteRepo repository.NoteRepository, lessonRepo repository.LessonRepository, c *cache.Cache) *NoteService {
	return &NoteService{noteRepo: noteRepo, lessonRepo: lessonRepo, cache: c}
}

func (s *NoteService) CreateNote(ctx context.Context, lessonID, content string) (*model.Note, error) {
	if content == "" {
		return nil, common.ErrValidation
	}
	if _, err := s.lessonRepo.FindByID(ctx, lessonID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &model.Note{
		ID:        uuid.NewString(),
		LessonID:  lessonID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return note, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, id, content string) (*model.Note, error) {
	if content == "" {
		return nil, common.ErrValidation
	}
	return s.noteRepo.Update(ctx, id, content)
}

func (s *NoteService) ListNotes(ctx context.Context) ([]model.Note, error) {
	return s.noteRepo.ListAnnotated(ctx)
}

func (s *NoteService) ListLessonNotes(ctx context.Context, lessonID string) ([]model.Note, error) {
	return s.noteRepo.ListByLesson(ctx, lessonID)
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *NoteService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, progressOverviewCacheKey)
	}
}

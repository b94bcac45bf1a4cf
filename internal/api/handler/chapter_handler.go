package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
)

type ChapterHandler struct {
	courseService *service.CourseService
	lessonService *service.LessonService
}

func NewChapterHandler(cs *service.CourseService, ls *service.LessonService) *ChapterHandler {
	return &ChapterHandler{courseService: cs, lessonService: ls}
}

func (h *ChapterHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{chapterID}", h.getChapter)
	r.Put("/{chapterID}", h.updateChapter)
	r.Delete("/{chapterID}", h.deleteChapter)
	r.Post("/{chapterID}/lessons", h.createLesson)
}

func (h *ChapterHandler) getChapter(w http.ResponseWriter, r *http.Request) {
	chapter, err := h.courseService.GetChapter(r.Context(), chi.URLParam(r, "chapterID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, chapter)
}

func (h *ChapterHandler) updateChapter(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	chapter, err := h.courseService.UpdateChapter(r.Context(), chi.URLParam(r, "chapterID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, chapter)
}

func (h *ChapterHandler) deleteChapter(w http.ResponseWriter, r *http.Request) {
	if err := h.courseService.DeleteChapter(r.Context(), chi.URLParam(r, "chapterID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChapterHandler) createLesson(w http.ResponseWriter, r *http.Request) {
	var req service.CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	lesson, err := h.lessonService.CreateLesson(r.Context(), chi.URLParam(r, "chapterID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, lesson)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
)

type LessonHandler struct {
	lessonService   *service.LessonService
	noteService     *service.NoteService
	bookmarkService *service.BookmarkService
}

func NewLessonHandler(ls *service.LessonService, ns *service.NoteService, bs *service.BookmarkService) *LessonHandler {
	return &LessonHandler{lessonService: ls, noteService: ns, bookmarkService: bs}
}

func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{lessonID}", h.getLesson)
	r.Put("/{lessonID}", h.updateLesson)
	r.Delete("/{lessonID}", h.deleteLesson)
	r.Get("/{lessonID}/notes", h.listLessonNotes)
	r.Post("/{lessonID}/notes", h.createNote)
	r.Post("/{lessonID}/bookmarks", h.createBookmark)
}

func (h *LessonHandler) getLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.lessonService.GetLesson(r.Context(), chi.URLParam(r, "lessonID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, lesson)
}

func (h *LessonHandler) updateLesson(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	lesson, err := h.lessonService.UpdateLesson(r.Context(), chi.URLParam(r, "lessonID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, lesson)
}

func (h *LessonHandler) deleteLesson(w http.ResponseWriter, r *http.Request) {
	if err := h.lessonService.DeleteLesson(r.Context(), chi.URLParam(r, "lessonID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LessonHandler) listLessonNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListLessonNotes(r.Context(), chi.URLParam(r, "lessonID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, notes)
}

func (h *LessonHandler) createNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), chi.URLParam(r, "lessonID"), req.Content)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, note)
}

func (h *LessonHandler) createBookmark(w http.ResponseWriter, r *http.Request) {
	bookmark, err := h.bookmarkService.CreateBookmark(r.Context(), chi.URLParam(r, "lessonID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, bookmark)
}

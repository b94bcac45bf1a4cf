package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(ns *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: ns}
}

func (h *NoteHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listNotes)
	r.Put("/{noteID}", h.updateNote)
	r.Delete("/{noteID}", h.deleteNote)
}

func (h *NoteHandler) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListNotes(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) updateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), chi.URLParam(r, "noteID"), req.Content)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.DeleteNote(r.Context(), chi.URLParam(r, "noteID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

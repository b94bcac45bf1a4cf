package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(ps *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: ps}
}

func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.overview)
	r.Post("/", h.setCompletion)
	r.Get("/summary", h.summary)
}

func (h *ProgressHandler) setCompletion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LessonID  string `json:"lessonId"`
		Completed *bool  `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.LessonID == "" || req.Completed == nil {
		common.RespondWithError(w, http.StatusBadRequest, "lessonId and completed status are required")
		return
	}

	progress, err := h.progressService.SetCompletion(r.Context(), req.LessonID, *req.Completed)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, progress)
}

func (h *ProgressHandler) overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.progressService.Overview(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, overview)
}

func (h *ProgressHandler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.progressService.Summary(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, summary)
}

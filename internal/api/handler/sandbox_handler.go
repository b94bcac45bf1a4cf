package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
	"learndeck/internal/sandbox"
)

type SandboxHandler struct {
	sandboxService *service.SandboxService
}

func NewSandboxHandler(ss *service.SandboxService) *SandboxHandler {
	return &SandboxHandler{sandboxService: ss}
}

func (h *SandboxHandler) RegisterRoutes(r chi.Router) {
	r.Post("/execute", h.execute)
	r.Get("/tasks", h.listTasks)
	r.Post("/tasks", h.createTask)
	r.Get("/tasks/{taskID}", h.getTask)
	r.Put("/tasks/{taskID}", h.updateTask)
	r.Delete("/tasks/{taskID}", h.deleteTask)
	r.Post("/tasks/{taskID}/submit", h.submit)
}

type executeRequest struct {
	Code string `json:"code"`
}

type executeResponse struct {
	Result *sandbox.RowSet `json:"result"`
}

type submitResponse struct {
	IsCorrect bool            `json:"isCorrect"`
	Result    *sandbox.RowSet `json:"result"`
}

// execute runs SQL without grading or persistence. The driver's error text
// goes back verbatim: the UI renders it as-is.
func (h *SandboxHandler) execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.Code == "" {
		common.RespondWithError(w, http.StatusBadRequest, "Code is required")
		return
	}

	result := h.sandboxService.Execute(r.Context(), req.Code)
	if result.Failed() {
		common.RespondWithError(w, http.StatusBadRequest, result.Err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, executeResponse{Result: result.Rows})
}

func (h *SandboxHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.Code == "" {
		common.RespondWithError(w, http.StatusBadRequest, "Code is required")
		return
	}

	verdict, err := h.sandboxService.Submit(r.Context(), chi.URLParam(r, "taskID"), req.Code)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if verdict.ExecError != "" {
		common.RespondWithError(w, http.StatusBadRequest, verdict.ExecError)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submitResponse{IsCorrect: verdict.IsCorrect, Result: verdict.Result})
}

func (h *SandboxHandler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.sandboxService.ListTasks(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tasks)
}

func (h *SandboxHandler) createTask(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	task, err := h.sandboxService.CreateTask(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, task)
}

func (h *SandboxHandler) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.sandboxService.GetTask(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, task)
}

func (h *SandboxHandler) updateTask(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	task, err := h.sandboxService.UpdateTask(r.Context(), chi.URLParam(r, "taskID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, task)
}

func (h *SandboxHandler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.sandboxService.DeleteTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

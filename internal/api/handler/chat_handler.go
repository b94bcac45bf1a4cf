package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(cs *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: cs}
}

func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.chat)
	r.Get("/models", h.listModels)
}

func (h *ChatHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	content, err := h.chatService.Complete(r.Context(), req)
	if err != nil {
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			common.RespondWithError(w, upstream.StatusCode, upstream.Body)
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"content": content})
}

func (h *ChatHandler) listModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.chatService.ListModels(r.Context())
	if err != nil {
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			common.RespondWithError(w, upstream.StatusCode, upstream.Body)
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, models)
}

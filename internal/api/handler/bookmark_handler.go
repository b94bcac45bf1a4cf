package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
)

type BookmarkHandler struct {
	bookmarkService *service.BookmarkService
}

func NewBookmarkHandler(bs *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bs}
}

func (h *BookmarkHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listBookmarks)
	r.Delete("/{bookmarkID}", h.deleteBookmark)
}

func (h *BookmarkHandler) listBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.bookmarkService.ListBookmarks(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, bookmarks)
}

func (h *BookmarkHandler) deleteBookmark(w http.ResponseWriter, r *http.Request) {
	if err := h.bookmarkService.DeleteBookmark(r.Context(), chi.URLParam(r, "bookmarkID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

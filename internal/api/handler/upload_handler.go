package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"learndeck/internal/common"
	"learndeck/internal/platform/config"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.upload)
}

// upload stores one multipart file on local disk under a UUID name and
// returns the path it is served from.
func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	maxSize := int64(config.AppConfig.UploadMaxSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "File is required: "+err.Error())
		return
	}
	defer file.Close()

	if err := os.MkdirAll(config.AppConfig.UploadDir, 0o755); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(config.AppConfig.UploadDir, name))
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	common.RespondWithJSON(w, http.StatusCreated, map[string]string{"url": "/uploads/" + name})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
)

type DataHandler struct {
	dataService *service.DataService
}

func NewDataHandler(ds *service.DataService) *DataHandler {
	return &DataHandler{dataService: ds}
}

func (h *DataHandler) RegisterRoutes(r chi.Router) {
	r.Get("/export", h.exportData)
	r.Post("/import", h.importData)
	r.Post("/clear", h.clearData)
}

func (h *DataHandler) exportData(w http.ResponseWriter, r *http.Request) {
	doc, err := h.dataService.Export(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="learndeck-export.json"`)
	common.RespondWithJSON(w, http.StatusOK, doc)
}

func (h *DataHandler) importData(w http.ResponseWriter, r *http.Request) {
	var doc service.ExportDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.dataService.Import(r.Context(), &doc); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

func (h *DataHandler) clearData(w http.ResponseWriter, r *http.Request) {
	if err := h.dataService.Clear(r.Context()); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learndeck/internal/app/service"
	"learndeck/internal/common"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(cs *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: cs}
}

func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCourses)
	r.Post("/", h.createCourse)
	r.Get("/search", h.searchCourses)
	r.Get("/{courseID}", h.getCourse)
	r.Put("/{courseID}", h.updateCourse)
	r.Delete("/{courseID}", h.deleteCourse)
	r.Post("/{courseID}/chapters", h.createChapter)
}

func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) searchCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.SearchCourses(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseService.GetCourse(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	course, err := h.courseService.UpdateCourse(r.Context(), chi.URLParam(r, "courseID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.courseService.DeleteCourse(r.Context(), chi.URLParam(r, "courseID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) createChapter(w http.ResponseWriter, r *http.Request) {
	var req service.CreateChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	chapter, err := h.courseService.CreateChapter(r.Context(), chi.URLParam(r, "courseID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, chapter)
}

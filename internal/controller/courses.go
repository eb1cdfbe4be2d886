package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eduadmin/academia/internal/cache"
	"github.com/eduadmin/academia/internal/model"
)

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.courses.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, courses, "courses retrieved")
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "course id is required")
		return
	}

	course, err := s.courses.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, course, "course retrieved")
}

func (s *Server) handleSearchCoursesByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	courses, err := s.courses.SearchByName(r.Context(), name)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, courses, "courses retrieved")
}

func (s *Server) handleCoursesByTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := parseIDParam(r, "teacherID")
	if !ok {
		respondError(w, http.StatusBadRequest, "teacher id is required")
		return
	}

	courses, err := s.courses.ListByTeacher(r.Context(), teacherID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, courses, "courses retrieved")
}

func (s *Server) handlePopularCourses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	courses, err := s.courses.Popular(r.Context(), limit)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, courses, "popular courses retrieved")
}

type createCourseRequest struct {
	Name      string `json:"name"`
	TeacherID int64  `json:"teacher_id"`
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.TeacherID <= 0 {
		respondError(w, http.StatusBadRequest, "name and teacher_id are required")
		return
	}

	course, err := s.courses.Create(r.Context(), req.Name, req.TeacherID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, course, "course created")
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "course id is required")
		return
	}

	var upd model.CourseUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.Name == nil && upd.TeacherID == nil {
		respondError(w, http.StatusBadRequest, "at least one field must be provided")
		return
	}

	course, err := s.courses.Update(r.Context(), id, upd)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, course, "course updated")
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "course id is required")
		return
	}

	if err := s.courses.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, nil, "course deleted")
}

func (s *Server) handleCourseStats(w http.ResponseWriter, r *http.Request) {
	s.respondStats(w, r, cache.KeyCourseStats, func(ctx context.Context) (interface{}, error) {
		return s.courses.Stats(ctx)
	})
}

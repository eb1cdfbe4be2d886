package controller

import (
	"context"
	"net/http"

	"github.com/eduadmin/academia/internal/cache"
	"github.com/eduadmin/academia/internal/model"
)

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := s.teachers.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, teachers, "teachers retrieved")
}

func (s *Server) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "teacher id is required")
		return
	}

	teacher, err := s.teachers.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, teacher, "teacher retrieved")
}

func (s *Server) handleSearchTeachers(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")
	if specialty == "" {
		respondError(w, http.StatusBadRequest, "specialty query parameter is required")
		return
	}

	teachers, err := s.teachers.ListBySpecialty(r.Context(), specialty)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, teachers, "teachers retrieved")
}

type createTeacherRequest struct {
	Name      string  `json:"name"`
	Specialty *string `json:"specialty"`
}

func (s *Server) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req createTeacherRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	teacher, err := s.teachers.Create(r.Context(), req.Name, req.Specialty)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, teacher, "teacher created")
}

func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "teacher id is required")
		return
	}

	var upd model.TeacherUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.Name == nil && upd.Specialty == nil {
		respondError(w, http.StatusBadRequest, "at least one field must be provided")
		return
	}

	teacher, err := s.teachers.Update(r.Context(), id, upd)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, teacher, "teacher updated")
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "teacher id is required")
		return
	}

	if err := s.teachers.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, nil, "teacher deleted")
}

func (s *Server) handleTeacherStats(w http.ResponseWriter, r *http.Request) {
	s.respondStats(w, r, cache.KeyTeacherStats, func(ctx context.Context) (interface{}, error) {
		return s.teachers.Stats(ctx)
	})
}

package controller

import (
	"context"
	"net/http"

	"github.com/eduadmin/academia/internal/cache"
	"github.com/eduadmin/academia/internal/model"
)

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.students.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, students, "students retrieved")
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "student id is required")
		return
	}

	student, err := s.students.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, student, "student retrieved")
}

func (s *Server) handleSearchStudentsByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	students, err := s.students.SearchByName(r.Context(), name)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, students, "students retrieved")
}

func (s *Server) handleSearchStudentByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	student, err := s.students.GetByEmail(r.Context(), email)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, student, "student retrieved")
}

func (s *Server) handleSearchStudentsByRegistered(w http.ResponseWriter, r *http.Request) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw == "" || toRaw == "" {
		respondError(w, http.StatusBadRequest, "from and to query parameters are required")
		return
	}

	from, err := parseDate(fromRaw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := parseDate(toRaw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid to date")
		return
	}

	students, err := s.students.ListByRegisteredBetween(r.Context(), from, to)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, students, "students retrieved")
}

type createStudentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	student, err := s.students.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, student, "student created")
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "student id is required")
		return
	}

	var upd model.StudentUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.Name == nil && upd.Email == nil {
		respondError(w, http.StatusBadRequest, "at least one field must be provided")
		return
	}

	student, err := s.students.Update(r.Context(), id, upd)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, student, "student updated")
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "student id is required")
		return
	}

	if err := s.students.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, nil, "student deleted")
}

func (s *Server) handleStudentStats(w http.ResponseWriter, r *http.Request) {
	s.respondStats(w, r, cache.KeyStudentStats, func(ctx context.Context) (interface{}, error) {
		return s.students.Stats(ctx)
	})
}

package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eduadmin/academia/internal/cache"
	"github.com/eduadmin/academia/internal/model"
)

func (s *Server) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := s.enrollments.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, enrollments, "enrollments retrieved")
}

func (s *Server) handleGetEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "enrollment id is required")
		return
	}

	enrollment, err := s.enrollments.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, enrollment, "enrollment retrieved")
}

// handleCheckEnrollment отвечает, записан ли студент на курс, по query-параметрам
func (s *Server) handleCheckEnrollment(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(r.URL.Query().Get("student_id"), 10, 64)
	if err != nil || studentID <= 0 {
		respondError(w, http.StatusBadRequest, "student_id query parameter is required")
		return
	}
	courseID, err := strconv.ParseInt(r.URL.Query().Get("course_id"), 10, 64)
	if err != nil || courseID <= 0 {
		respondError(w, http.StatusBadRequest, "course_id query parameter is required")
		return
	}

	check, err := s.enrollments.Check(r.Context(), studentID, courseID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, check, "enrollment check completed")
}

func (s *Server) handleEnrollmentsByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := parseIDParam(r, "studentID")
	if !ok {
		respondError(w, http.StatusBadRequest, "student id is required")
		return
	}

	enrollments, err := s.enrollments.ListByStudent(r.Context(), studentID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, enrollments, "enrollments retrieved")
}

func (s *Server) handleEnrollmentsByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseIDParam(r, "courseID")
	if !ok {
		respondError(w, http.StatusBadRequest, "course id is required")
		return
	}

	enrollments, err := s.enrollments.ListByCourse(r.Context(), courseID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, enrollments, "enrollments retrieved")
}

func (s *Server) handleEnrollmentsByDate(w http.ResponseWriter, r *http.Request) {
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

	enrollments, err := s.enrollments.ListByCreatedBetween(r.Context(), from, to)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, enrollments, "enrollments retrieved")
}

type createEnrollmentRequest struct {
	StudentID int64 `json:"student_id"`
	CourseID  int64 `json:"course_id"`
}

func (s *Server) handleCreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var req createEnrollmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StudentID <= 0 || req.CourseID <= 0 {
		respondError(w, http.StatusBadRequest, "student_id and course_id are required")
		return
	}

	enrollment, err := s.enrollments.Create(r.Context(), req.StudentID, req.CourseID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, enrollment, "enrollment created")
}

func (s *Server) handleUpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "enrollment id is required")
		return
	}

	var upd model.EnrollmentUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.StudentID == nil && upd.CourseID == nil {
		respondError(w, http.StatusBadRequest, "at least one field must be provided")
		return
	}

	enrollment, err := s.enrollments.Update(r.Context(), id, upd)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, enrollment, "enrollment updated")
}

func (s *Server) handleDeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "enrollment id is required")
		return
	}

	if err := s.enrollments.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, nil, "enrollment deleted")
}

func (s *Server) handleEnrollmentStats(w http.ResponseWriter, r *http.Request) {
	s.respondStats(w, r, cache.KeyEnrollmentStats, func(ctx context.Context) (interface{}, error) {
		return s.enrollments.Stats(ctx)
	})
}

package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eduadmin/academia/internal/cache"
	"github.com/eduadmin/academia/internal/model"
	"github.com/eduadmin/academia/internal/render"
)

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := s.schedule.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, slots, "schedule slots retrieved")
}

func (s *Server) handleGetSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "slot id is required")
		return
	}

	slot, err := s.schedule.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, slot, "schedule slot retrieved")
}

// handleCheckAvailability проверяет, свободен ли интервал, без создания слота.
// exclude_id позволяет исключить из проверки редактируемый слот
func (s *Server) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	courseID, err := strconv.ParseInt(q.Get("course_id"), 10, 64)
	if err != nil || courseID <= 0 {
		respondError(w, http.StatusBadRequest, "course_id query parameter is required")
		return
	}

	day := q.Get("day")
	start := q.Get("start_time")
	end := q.Get("end_time")
	if day == "" || start == "" || end == "" {
		respondError(w, http.StatusBadRequest, "day, start_time and end_time query parameters are required")
		return
	}

	var excludeID int64
	if raw := q.Get("exclude_id"); raw != "" {
		excludeID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || excludeID <= 0 {
			respondError(w, http.StatusBadRequest, "exclude_id must be a positive integer")
			return
		}
	}

	availability, err := s.schedule.CheckAvailability(r.Context(), courseID, day, start, end, excludeID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, availability, "availability check completed")
}

func (s *Server) handleSlotsByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseIDParam(r, "courseID")
	if !ok {
		respondError(w, http.StatusBadRequest, "course id is required")
		return
	}

	slots, err := s.schedule.ListByCourse(r.Context(), courseID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, slots, "schedule slots retrieved")
}

func (s *Server) handleSlotsByTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := parseIDParam(r, "teacherID")
	if !ok {
		respondError(w, http.StatusBadRequest, "teacher id is required")
		return
	}

	slots, err := s.schedule.ListByTeacher(r.Context(), teacherID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, slots, "schedule slots retrieved")
}

func (s *Server) handleSlotsByDay(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if day == "" {
		respondError(w, http.StatusBadRequest, "day query parameter is required")
		return
	}

	slots, err := s.schedule.ListByDay(r.Context(), day)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, slots, "schedule slots retrieved")
}

func (s *Server) handleSlotsByTimeRange(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		respondError(w, http.StatusBadRequest, "from and to query parameters are required")
		return
	}

	slots, err := s.schedule.ListByTimeRange(r.Context(), from, to)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, slots, "schedule slots retrieved")
}

// handleCourseWeekImage рендерит недельную сетку занятий курса в PNG
func (s *Server) handleCourseWeekImage(w http.ResponseWriter, r *http.Request) {
	courseID, ok := parseIDParam(r, "courseID")
	if !ok {
		respondError(w, http.StatusBadRequest, "course id is required")
		return
	}

	course, err := s.courses.GetByID(r.Context(), courseID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	slots, err := s.schedule.ListByCourse(r.Context(), courseID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	png, err := render.WeekPNG(course.Name, slots)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

type createSlotRequest struct {
	CourseID  int64  `json:"course_id"`
	TeacherID int64  `json:"teacher_id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *Server) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	var req createSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CourseID <= 0 || req.TeacherID <= 0 || req.Day == "" || req.StartTime == "" || req.EndTime == "" {
		respondError(w, http.StatusBadRequest, "course_id, teacher_id, day, start_time and end_time are required")
		return
	}

	slot, err := s.schedule.Create(r.Context(), req.CourseID, req.TeacherID, req.Day, req.StartTime, req.EndTime)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, slot, "schedule slot created")
}

func (s *Server) handleUpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "slot id is required")
		return
	}

	var upd model.ScheduleSlotUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.CourseID == nil && upd.TeacherID == nil && upd.Day == nil && upd.StartTime == nil && upd.EndTime == nil {
		respondError(w, http.StatusBadRequest, "at least one field must be provided")
		return
	}

	slot, err := s.schedule.Update(r.Context(), id, upd)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, slot, "schedule slot updated")
}

func (s *Server) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "slot id is required")
		return
	}

	if err := s.schedule.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, nil, "schedule slot deleted")
}

func (s *Server) handleScheduleStats(w http.ResponseWriter, r *http.Request) {
	s.respondStats(w, r, cache.KeyScheduleStats, func(ctx context.Context) (interface{}, error) {
		return s.schedule.Stats(ctx)
	})
}

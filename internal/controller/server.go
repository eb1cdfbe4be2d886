package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eduadmin/academia/internal/cache"
	"github.com/eduadmin/academia/internal/model"
)

// Интерфейсы сервисов объявлены на стороне потребителя, чтобы хендлеры
// можно было тестировать на заглушках

type TeacherService interface {
	List(ctx context.Context) ([]*model.Teacher, error)
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
	ListBySpecialty(ctx context.Context, specialty string) ([]*model.Teacher, error)
	Create(ctx context.Context, name string, specialty *string) (*model.Teacher, error)
	Update(ctx context.Context, id int64, upd model.TeacherUpdate) (*model.Teacher, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*model.TeacherStats, error)
}

type StudentService interface {
	List(ctx context.Context) ([]*model.Student, error)
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	SearchByName(ctx context.Context, name string) ([]*model.Student, error)
	ListByRegisteredBetween(ctx context.Context, from, to time.Time) ([]*model.Student, error)
	Create(ctx context.Context, name, email string) (*model.Student, error)
	Update(ctx context.Context, id int64, upd model.StudentUpdate) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*model.StudentStats, error)
}

type CourseService interface {
	List(ctx context.Context) ([]*model.Course, error)
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	SearchByName(ctx context.Context, name string) ([]*model.Course, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Course, error)
	Popular(ctx context.Context, limit int) ([]*model.PopularCourse, error)
	Create(ctx context.Context, name string, teacherID int64) (*model.Course, error)
	Update(ctx context.Context, id int64, upd model.CourseUpdate) (*model.Course, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*model.CourseStats, error)
}

type EnrollmentService interface {
	List(ctx context.Context) ([]*model.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	Create(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error)
	Update(ctx context.Context, id int64, upd model.EnrollmentUpdate) (*model.Enrollment, error)
	Delete(ctx context.Context, id int64) error
	Check(ctx context.Context, studentID, courseID int64) (*model.EnrollmentCheck, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*model.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*model.Enrollment, error)
	ListByCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Enrollment, error)
	Stats(ctx context.Context) (*model.EnrollmentStats, error)
}

type ScheduleService interface {
	List(ctx context.Context) ([]*model.ScheduleSlot, error)
	GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error)
	CheckAvailability(ctx context.Context, courseID int64, day, start, end string, excludeID int64) (*model.Availability, error)
	Create(ctx context.Context, courseID, teacherID int64, day, start, end string) (*model.ScheduleSlot, error)
	Update(ctx context.Context, id int64, upd model.ScheduleSlotUpdate) (*model.ScheduleSlot, error)
	Delete(ctx context.Context, id int64) error
	ListByCourse(ctx context.Context, courseID int64) ([]*model.ScheduleSlot, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*model.ScheduleSlot, error)
	ListByDay(ctx context.Context, day string) ([]*model.ScheduleSlot, error)
	ListByTimeRange(ctx context.Context, from, to string) ([]*model.ScheduleSlot, error)
	Stats(ctx context.Context) (*model.ScheduleStats, error)
}

type Server struct {
	teachers    TeacherService
	students    StudentService
	courses     CourseService
	enrollments EnrollmentService
	schedule    ScheduleService
	cache       *cache.Cache
	logger      *zap.Logger
}

func NewServer(
	teachers TeacherService,
	students StudentService,
	courses CourseService,
	enrollments EnrollmentService,
	schedule ScheduleService,
	statsCache *cache.Cache,
	logger *zap.Logger,
) *Server {
	return &Server{
		teachers:    teachers,
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		schedule:    schedule,
		cache:       statsCache,
		logger:      logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/teachers", func(r chi.Router) {
			r.Get("/", s.handleListTeachers)
			r.Get("/stats", s.handleTeacherStats)
			r.Get("/search", s.handleSearchTeachers)
			r.Get("/{id}", s.handleGetTeacher)
			r.Post("/", s.handleCreateTeacher)
			r.Put("/{id}", s.handleUpdateTeacher)
			r.Delete("/{id}", s.handleDeleteTeacher)
		})

		r.Route("/students", func(r chi.Router) {
			r.Get("/", s.handleListStudents)
			r.Get("/stats", s.handleStudentStats)
			r.Get("/search/name", s.handleSearchStudentsByName)
			r.Get("/search/email", s.handleSearchStudentByEmail)
			r.Get("/search/registered", s.handleSearchStudentsByRegistered)
			r.Get("/{id}", s.handleGetStudent)
			r.Post("/", s.handleCreateStudent)
			r.Put("/{id}", s.handleUpdateStudent)
			r.Delete("/{id}", s.handleDeleteStudent)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", s.handleListCourses)
			r.Get("/stats", s.handleCourseStats)
			r.Get("/popular", s.handlePopularCourses)
			r.Get("/search/name", s.handleSearchCoursesByName)
			r.Get("/teacher/{teacherID}", s.handleCoursesByTeacher)
			r.Get("/{id}", s.handleGetCourse)
			r.Post("/", s.handleCreateCourse)
			r.Put("/{id}", s.handleUpdateCourse)
			r.Delete("/{id}", s.handleDeleteCourse)
		})

		r.Route("/enrollments", func(r chi.Router) {
			r.Get("/", s.handleListEnrollments)
			r.Get("/stats", s.handleEnrollmentStats)
			r.Get("/check", s.handleCheckEnrollment)
			r.Get("/date", s.handleEnrollmentsByDate)
			r.Get("/student/{studentID}", s.handleEnrollmentsByStudent)
			r.Get("/course/{courseID}", s.handleEnrollmentsByCourse)
			r.Get("/{id}", s.handleGetEnrollment)
			r.Post("/", s.handleCreateEnrollment)
			r.Put("/{id}", s.handleUpdateEnrollment)
			r.Delete("/{id}", s.handleDeleteEnrollment)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", s.handleListSlots)
			r.Get("/stats", s.handleScheduleStats)
			r.Get("/availability", s.handleCheckAvailability)
			r.Get("/day", s.handleSlotsByDay)
			r.Get("/time-range", s.handleSlotsByTimeRange)
			r.Get("/course/{courseID}", s.handleSlotsByCourse)
			r.Get("/course/{courseID}/image", s.handleCourseWeekImage)
			r.Get("/teacher/{teacherID}", s.handleSlotsByTeacher)
			r.Get("/{id}", s.handleGetSlot)
			r.Post("/", s.handleCreateSlot)
			r.Put("/{id}", s.handleUpdateSlot)
			r.Delete("/{id}", s.handleDeleteSlot)
		})
	})

	return r
}

func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// parseDate принимает дату вида 2006-01-02 либо полную метку RFC3339
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// respondStats отдаёт статистику из кеша, либо вычисляет и кеширует её
func (s *Server) respondStats(w http.ResponseWriter, r *http.Request, key string, fetch func(context.Context) (interface{}, error)) {
	if data := s.cache.Get(r.Context(), key); data != nil {
		respondData(w, http.StatusOK, json.RawMessage(data), "statistics retrieved")
		return
	}

	stats, err := fetch(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.cache.Set(r.Context(), key, stats)
	respondData(w, http.StatusOK, stats, "statistics retrieved")
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eduadmin/academia/internal/model"
	"github.com/eduadmin/academia/internal/repository/base"
	"go.uber.org/zap"
)

type StudentService struct {
	studentRepo    StudentRepository
	enrollmentRepo EnrollmentRepository
	courseRepo     CourseRepository
	logger         *zap.Logger
}

func NewStudentService(
	studentRepo StudentRepository,
	enrollmentRepo EnrollmentRepository,
	courseRepo CourseRepository,
	logger *zap.Logger,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

func (s *StudentService) attachEnrollments(ctx context.Context, students []*model.Student) error {
	enrollments, err := s.enrollmentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list enrollments: %w", err)
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}

	coursesByID := make(map[int64]*model.Course, len(courses))
	for _, course := range courses {
		coursesByID[course.ID] = course
	}

	byStudent := make(map[int64][]*model.Enrollment)
	for _, enrollment := range enrollments {
		enrollment.Course = coursesByID[enrollment.CourseID]
		byStudent[enrollment.StudentID] = append(byStudent[enrollment.StudentID], enrollment)
	}

	for _, student := range students {
		student.Enrollments = byStudent[student.ID]
	}

	return nil
}

// List получает всех студентов с их записями на курсы
func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	if err := s.attachEnrollments(ctx, students); err != nil {
		return nil, err
	}

	return students, nil
}

// GetByID получает студента с записями на курсы
func (s *StudentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, notFound("student %d not found", id)
	}

	if err := s.attachEnrollments(ctx, []*model.Student{student}); err != nil {
		return nil, err
	}

	return student, nil
}

// GetByEmail получает студента по точному email
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get student by email: %w", err)
	}
	if student == nil {
		return nil, notFound("student with email %q not found", email)
	}

	if err := s.attachEnrollments(ctx, []*model.Student{student}); err != nil {
		return nil, err
	}

	return student, nil
}

// SearchByName ищет студентов по подстроке имени без учёта регистра
func (s *StudentService) SearchByName(ctx context.Context, name string) ([]*model.Student, error) {
	students, err := s.studentRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}

	if err := s.attachEnrollments(ctx, students); err != nil {
		return nil, err
	}

	return students, nil
}

// ListByRegisteredBetween получает студентов по дате регистрации, границы включительно
func (s *StudentService) ListByRegisteredBetween(ctx context.Context, from, to time.Time) ([]*model.Student, error) {
	return s.studentRepo.ListByRegisteredBetween(ctx, from, to)
}

// Create создаёт нового студента; уникальность email обеспечивает БД
func (s *StudentService) Create(ctx context.Context, name, email string) (*model.Student, error) {
	student := &model.Student{
		Name:  name,
		Email: email,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, conflict("a student with email %q already exists", email)
		}
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.logger.Info("Student created",
		zap.Int64("student_id", student.ID),
		zap.String("email", student.Email))

	return student, nil
}

// Update применяет частичное обновление студента
func (s *StudentService) Update(ctx context.Context, id int64, upd model.StudentUpdate) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, notFound("student %d not found", id)
	}

	if upd.Name != nil {
		student.Name = *upd.Name
	}
	if upd.Email != nil {
		student.Email = *upd.Email
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, conflict("a student with email %q already exists", student.Email)
		}
		return nil, fmt.Errorf("update student: %w", err)
	}

	s.logger.Info("Student updated", zap.Int64("student_id", student.ID))

	return student, nil
}

// Delete удаляет студента; удаление запрещено, пока есть записи на курсы
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return notFound("student %d not found", id)
	}

	enrollments, err := s.enrollmentRepo.CountByStudent(ctx, id)
	if err != nil {
		return fmt.Errorf("count student enrollments: %w", err)
	}
	if enrollments > 0 {
		return conflict("student %d still has %d enrollments", id, enrollments)
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}

	s.logger.Info("Student deleted", zap.Int64("student_id", id))

	return nil
}

// Stats возвращает счётчики студентов
func (s *StudentService) Stats(ctx context.Context) (*model.StudentStats, error) {
	total, err := s.studentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}

	enrolled, err := s.studentRepo.CountEnrolled(ctx)
	if err != nil {
		return nil, fmt.Errorf("count enrolled students: %w", err)
	}

	return &model.StudentStats{
		Total:      total,
		Enrolled:   enrolled,
		Unenrolled: total - enrolled,
	}, nil
}

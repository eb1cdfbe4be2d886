package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eduadmin/academia/internal/model"
	"github.com/eduadmin/academia/internal/repository/base"
	"go.uber.org/zap"
)

type EnrollmentService struct {
	enrollmentRepo EnrollmentRepository
	studentRepo    StudentRepository
	courseRepo     CourseRepository
	teacherRepo    TeacherRepository
	logger         *zap.Logger
}

func NewEnrollmentService(
	enrollmentRepo EnrollmentRepository,
	studentRepo StudentRepository,
	courseRepo CourseRepository,
	teacherRepo TeacherRepository,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		teacherRepo:    teacherRepo,
		logger:         logger,
	}
}

func (s *EnrollmentService) attachAssociations(ctx context.Context, enrollments []*model.Enrollment) error {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list students: %w", err)
	}
	studentsByID := make(map[int64]*model.Student, len(students))
	for _, student := range students {
		studentsByID[student.ID] = student
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}
	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teachers: %w", err)
	}
	teachersByID := make(map[int64]*model.Teacher, len(teachers))
	for _, teacher := range teachers {
		teachersByID[teacher.ID] = teacher
	}
	coursesByID := make(map[int64]*model.Course, len(courses))
	for _, course := range courses {
		course.Teacher = teachersByID[course.TeacherID]
		coursesByID[course.ID] = course
	}

	for _, enrollment := range enrollments {
		enrollment.Student = studentsByID[enrollment.StudentID]
		enrollment.Course = coursesByID[enrollment.CourseID]
	}

	return nil
}

// List получает все записи со студентом и курсом (включая преподавателя курса)
func (s *EnrollmentService) List(ctx context.Context) ([]*model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	if err := s.attachAssociations(ctx, enrollments); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// GetByID получает запись со студентом и курсом
func (s *EnrollmentService) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, notFound("enrollment %d not found", id)
	}

	if err := s.attachAssociations(ctx, []*model.Enrollment{enrollment}); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// Create записывает студента на курс; пара (студент, курс) уникальна
func (s *EnrollmentService) Create(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, notFound("student %d not found", studentID)
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, notFound("course %d not found", courseID)
	}

	existing, err := s.enrollmentRepo.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if existing != nil {
		return nil, conflict("student %d is already enrolled in course %d", studentID, courseID)
	}

	enrollment := &model.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		// Подстраховка на случай гонки между проверкой и вставкой
		if base.IsUniqueViolation(err) {
			return nil, conflict("student %d is already enrolled in course %d", studentID, courseID)
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	s.logger.Info("Enrollment created",
		zap.Int64("enrollment_id", enrollment.ID),
		zap.Int64("student_id", studentID),
		zap.Int64("course_id", courseID))

	return enrollment, nil
}

// Update применяет частичное обновление записи. Дубликат пары после обновления
// не перепроверяется сервисом — его отлавливает только ограничение БД
func (s *EnrollmentService) Update(ctx context.Context, id int64, upd model.EnrollmentUpdate) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, notFound("enrollment %d not found", id)
	}

	if upd.StudentID != nil {
		enrollment.StudentID = *upd.StudentID
	}
	if upd.CourseID != nil {
		enrollment.CourseID = *upd.CourseID
	}

	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, conflict("student %d is already enrolled in course %d", enrollment.StudentID, enrollment.CourseID)
		}
		return nil, fmt.Errorf("update enrollment: %w", err)
	}

	s.logger.Info("Enrollment updated", zap.Int64("enrollment_id", enrollment.ID))

	return enrollment, nil
}

// Delete удаляет запись
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get enrollment: %w", err)
	}
	if enrollment == nil {
		return notFound("enrollment %d not found", id)
	}

	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}

	s.logger.Info("Enrollment deleted", zap.Int64("enrollment_id", id))

	return nil
}

// Check отвечает, записан ли студент на курс
func (s *EnrollmentService) Check(ctx context.Context, studentID, courseID int64) (*model.EnrollmentCheck, error) {
	enrollment, err := s.enrollmentRepo.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}

	return &model.EnrollmentCheck{
		Enrolled:   enrollment != nil,
		Enrollment: enrollment,
	}, nil
}

// ListByStudent получает записи студента
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int64) ([]*model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by student: %w", err)
	}

	if err := s.attachAssociations(ctx, enrollments); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListByCourse получает записи на курс
func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID int64) ([]*model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by course: %w", err)
	}

	if err := s.attachAssociations(ctx, enrollments); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListByCreatedBetween получает записи по дате создания, границы включительно
func (s *EnrollmentService) ListByCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListByCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by date: %w", err)
	}

	if err := s.attachAssociations(ctx, enrollments); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// Stats возвращает счётчики записей и рейтинг курсов
func (s *EnrollmentService) Stats(ctx context.Context) (*model.EnrollmentStats, error) {
	total, err := s.enrollmentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}

	perCourse, err := s.enrollmentRepo.CountPerCourse(ctx)
	if err != nil {
		return nil, fmt.Errorf("count enrollments per course: %w", err)
	}

	return &model.EnrollmentStats{
		Total:     total,
		PerCourse: perCourse,
	}, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/eduadmin/academia/internal/model"
	"go.uber.org/zap"
)

type CourseService struct {
	courseRepo     CourseRepository
	teacherRepo    TeacherRepository
	enrollmentRepo EnrollmentRepository
	studentRepo    StudentRepository
	slotRepo       SlotRepository
	logger         *zap.Logger
}

func NewCourseService(
	courseRepo CourseRepository,
	teacherRepo TeacherRepository,
	enrollmentRepo EnrollmentRepository,
	studentRepo StudentRepository,
	slotRepo SlotRepository,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		teacherRepo:    teacherRepo,
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		slotRepo:       slotRepo,
		logger:         logger,
	}
}

// List получает все курсы с преподавателем, записями (включая студентов) и слотами
func (s *CourseService) List(ctx context.Context) ([]*model.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	teachersByID := make(map[int64]*model.Teacher, len(teachers))
	for _, teacher := range teachers {
		teachersByID[teacher.ID] = teacher
	}

	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	studentsByID := make(map[int64]*model.Student, len(students))
	for _, student := range students {
		studentsByID[student.ID] = student
	}

	enrollments, err := s.enrollmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	enrollmentsByCourse := make(map[int64][]*model.Enrollment)
	for _, enrollment := range enrollments {
		enrollment.Student = studentsByID[enrollment.StudentID]
		enrollmentsByCourse[enrollment.CourseID] = append(enrollmentsByCourse[enrollment.CourseID], enrollment)
	}

	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	slotsByCourse := make(map[int64][]*model.ScheduleSlot)
	for _, slot := range slots {
		slotsByCourse[slot.CourseID] = append(slotsByCourse[slot.CourseID], slot)
	}

	for _, course := range courses {
		course.Teacher = teachersByID[course.TeacherID]
		course.Enrollments = enrollmentsByCourse[course.ID]
		course.Slots = slotsByCourse[course.ID]
	}

	return courses, nil
}

// GetByID получает курс с преподавателем, записями и слотами
func (s *CourseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, notFound("course %d not found", id)
	}

	if course.Teacher, err = s.teacherRepo.GetByID(ctx, course.TeacherID); err != nil {
		return nil, fmt.Errorf("get course teacher: %w", err)
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list course enrollments: %w", err)
	}
	for _, enrollment := range enrollments {
		if enrollment.Student, err = s.studentRepo.GetByID(ctx, enrollment.StudentID); err != nil {
			return nil, fmt.Errorf("get enrollment student: %w", err)
		}
	}
	course.Enrollments = enrollments

	if course.Slots, err = s.slotRepo.ListByCourse(ctx, id); err != nil {
		return nil, fmt.Errorf("list course slots: %w", err)
	}

	return course, nil
}

// SearchByName ищет курсы по подстроке названия без учёта регистра
func (s *CourseService) SearchByName(ctx context.Context, name string) ([]*model.Course, error) {
	return s.courseRepo.SearchByName(ctx, name)
}

// ListByTeacher получает курсы преподавателя
func (s *CourseService) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Course, error) {
	return s.courseRepo.ListByTeacher(ctx, teacherID)
}

// Popular получает топ курсов по числу записанных студентов
func (s *CourseService) Popular(ctx context.Context, limit int) ([]*model.PopularCourse, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.courseRepo.ListPopular(ctx, limit)
}

// Create создаёт новый курс; преподаватель обязан существовать
func (s *CourseService) Create(ctx context.Context, name string, teacherID int64) (*model.Course, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher %d not found", teacherID)
	}

	course := &model.Course{
		Name:      name,
		TeacherID: teacherID,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.logger.Info("Course created",
		zap.Int64("course_id", course.ID),
		zap.String("name", course.Name),
		zap.Int64("teacher_id", teacherID))

	return course, nil
}

// Update применяет частичное обновление курса
func (s *CourseService) Update(ctx context.Context, id int64, upd model.CourseUpdate) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, notFound("course %d not found", id)
	}

	if upd.Name != nil {
		course.Name = *upd.Name
	}
	if upd.TeacherID != nil {
		teacher, err := s.teacherRepo.GetByID(ctx, *upd.TeacherID)
		if err != nil {
			return nil, fmt.Errorf("get teacher: %w", err)
		}
		if teacher == nil {
			return nil, notFound("teacher %d not found", *upd.TeacherID)
		}
		course.TeacherID = *upd.TeacherID
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}

	s.logger.Info("Course updated", zap.Int64("course_id", course.ID))

	return course, nil
}

// Delete удаляет курс; запрещено при наличии записей, слоты удаляются каскадно
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return notFound("course %d not found", id)
	}

	enrollments, err := s.enrollmentRepo.CountByCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("count course enrollments: %w", err)
	}
	if enrollments > 0 {
		return conflict("course %d still has %d enrollments", id, enrollments)
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	s.logger.Info("Course deleted", zap.Int64("course_id", id))

	return nil
}

// Stats возвращает счётчики курсов
func (s *CourseService) Stats(ctx context.Context) (*model.CourseStats, error) {
	total, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}

	withEnrollments, err := s.courseRepo.CountWithEnrollments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count courses with enrollments: %w", err)
	}

	return &model.CourseStats{
		Total:              total,
		WithEnrollments:    withEnrollments,
		WithoutEnrollments: total - withEnrollments,
	}, nil
}

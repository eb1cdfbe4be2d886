package service

import (
	"context"
	"fmt"

	"github.com/eduadmin/academia/internal/model"
	"go.uber.org/zap"
)

type TeacherService struct {
	teacherRepo TeacherRepository
	courseRepo  CourseRepository
	slotRepo    SlotRepository
	logger      *zap.Logger
}

func NewTeacherService(
	teacherRepo TeacherRepository,
	courseRepo CourseRepository,
	slotRepo SlotRepository,
	logger *zap.Logger,
) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		courseRepo:  courseRepo,
		slotRepo:    slotRepo,
		logger:      logger,
	}
}

// List получает всех преподавателей с их курсами и слотами расписания
func (s *TeacherService) List(ctx context.Context) ([]*model.Teacher, error) {
	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	coursesByTeacher := make(map[int64][]*model.Course)
	for _, course := range courses {
		coursesByTeacher[course.TeacherID] = append(coursesByTeacher[course.TeacherID], course)
	}
	slotsByTeacher := make(map[int64][]*model.ScheduleSlot)
	for _, slot := range slots {
		slotsByTeacher[slot.TeacherID] = append(slotsByTeacher[slot.TeacherID], slot)
	}

	for _, teacher := range teachers {
		teacher.Courses = coursesByTeacher[teacher.ID]
		teacher.Slots = slotsByTeacher[teacher.ID]
	}

	return teachers, nil
}

// GetByID получает преподавателя с курсами и слотами
func (s *TeacherService) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher %d not found", id)
	}

	if teacher.Courses, err = s.courseRepo.ListByTeacher(ctx, id); err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}
	if teacher.Slots, err = s.slotRepo.ListByTeacher(ctx, id); err != nil {
		return nil, fmt.Errorf("list teacher slots: %w", err)
	}

	return teacher, nil
}

// ListBySpecialty получает преподавателей с точным совпадением специальности,
// вместе с их курсами
func (s *TeacherService) ListBySpecialty(ctx context.Context, specialty string) ([]*model.Teacher, error) {
	teachers, err := s.teacherRepo.ListBySpecialty(ctx, specialty)
	if err != nil {
		return nil, fmt.Errorf("list teachers by specialty: %w", err)
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	coursesByTeacher := make(map[int64][]*model.Course)
	for _, course := range courses {
		coursesByTeacher[course.TeacherID] = append(coursesByTeacher[course.TeacherID], course)
	}

	for _, teacher := range teachers {
		teacher.Courses = coursesByTeacher[teacher.ID]
	}

	return teachers, nil
}

// Create создаёт нового преподавателя
func (s *TeacherService) Create(ctx context.Context, name string, specialty *string) (*model.Teacher, error) {
	teacher := &model.Teacher{
		Name:      name,
		Specialty: specialty,
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}

	s.logger.Info("Teacher created",
		zap.Int64("teacher_id", teacher.ID),
		zap.String("name", teacher.Name))

	return teacher, nil
}

// Update применяет частичное обновление преподавателя
func (s *TeacherService) Update(ctx context.Context, id int64, upd model.TeacherUpdate) (*model.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher %d not found", id)
	}

	if upd.Name != nil {
		teacher.Name = *upd.Name
	}
	if upd.Specialty != nil {
		teacher.Specialty = upd.Specialty
	}

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, fmt.Errorf("update teacher: %w", err)
	}

	s.logger.Info("Teacher updated", zap.Int64("teacher_id", teacher.ID))

	return teacher, nil
}

// Delete удаляет преподавателя; удаление запрещено, пока за ним числятся курсы
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return notFound("teacher %d not found", id)
	}

	courses, err := s.courseRepo.CountByTeacher(ctx, id)
	if err != nil {
		return fmt.Errorf("count teacher courses: %w", err)
	}
	if courses > 0 {
		return conflict("teacher %d still has %d assigned courses", id, courses)
	}

	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}

	s.logger.Info("Teacher deleted", zap.Int64("teacher_id", id))

	return nil
}

// Stats возвращает счётчики преподавателей
func (s *TeacherService) Stats(ctx context.Context) (*model.TeacherStats, error) {
	total, err := s.teacherRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count teachers: %w", err)
	}

	withCourses, err := s.teacherRepo.CountWithCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("count teachers with courses: %w", err)
	}

	return &model.TeacherStats{
		Total:          total,
		WithCourses:    withCourses,
		WithoutCourses: total - withCourses,
	}, nil
}

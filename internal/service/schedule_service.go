package service

import (
	"context"
	"fmt"

	"github.com/eduadmin/academia/internal/model"
	"go.uber.org/zap"
)

type ScheduleService struct {
	slotRepo    SlotRepository
	courseRepo  CourseRepository
	teacherRepo TeacherRepository
	logger      *zap.Logger
}

func NewScheduleService(
	slotRepo SlotRepository,
	courseRepo CourseRepository,
	teacherRepo TeacherRepository,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		slotRepo:    slotRepo,
		courseRepo:  courseRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

func (s *ScheduleService) attachAssociations(ctx context.Context, slots []*model.ScheduleSlot) error {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}
	coursesByID := make(map[int64]*model.Course, len(courses))
	for _, course := range courses {
		coursesByID[course.ID] = course
	}

	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teachers: %w", err)
	}
	teachersByID := make(map[int64]*model.Teacher, len(teachers))
	for _, teacher := range teachers {
		teachersByID[teacher.ID] = teacher
	}

	for _, slot := range slots {
		slot.Course = coursesByID[slot.CourseID]
		slot.Teacher = teachersByID[slot.TeacherID]
	}

	return nil
}

// List получает все слоты с курсом и преподавателем
func (s *ScheduleService) List(ctx context.Context) ([]*model.ScheduleSlot, error) {
	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	if err := s.attachAssociations(ctx, slots); err != nil {
		return nil, err
	}

	return slots, nil
}

// GetByID получает слот с курсом и преподавателем
func (s *ScheduleService) GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, notFound("schedule slot %d not found", id)
	}

	if err := s.attachAssociations(ctx, []*model.ScheduleSlot{slot}); err != nil {
		return nil, err
	}

	return slot, nil
}

// CheckAvailability отвечает, свободен ли интервал [start, end] дня day для курса.
// excludeID исключает слот из сравнения (0 — не исключать ничего)
func (s *ScheduleService) CheckAvailability(ctx context.Context, courseID int64, day, start, end string, excludeID int64) (*model.Availability, error) {
	if err := model.ValidateClock(start); err != nil {
		return nil, invalid("start_time: %v", err)
	}
	if err := model.ValidateClock(end); err != nil {
		return nil, invalid("end_time: %v", err)
	}

	candidates, err := s.slotRepo.ListByCourseAndDay(ctx, courseID, day)
	if err != nil {
		return nil, fmt.Errorf("list candidate slots: %w", err)
	}

	found := findConflict(candidates, day, start, end, excludeID)

	return &model.Availability{
		Available: found == nil,
		Conflict:  found,
	}, nil
}

// Create создаёт слот расписания, если интервал не конфликтует с существующими
// слотами того же курса в тот же день
func (s *ScheduleService) Create(ctx context.Context, courseID, teacherID int64, day, start, end string) (*model.ScheduleSlot, error) {
	if err := model.ValidateClock(start); err != nil {
		return nil, invalid("start_time: %v", err)
	}
	if err := model.ValidateClock(end); err != nil {
		return nil, invalid("end_time: %v", err)
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, notFound("course %d not found", courseID)
	}

	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher %d not found", teacherID)
	}

	candidates, err := s.slotRepo.ListByCourseAndDay(ctx, courseID, day)
	if err != nil {
		return nil, fmt.Errorf("list candidate slots: %w", err)
	}
	if found := findConflict(candidates, day, start, end, 0); found != nil {
		return nil, conflict("slot %s %s-%s overlaps existing slot %d (%s-%s) for course %d",
			day, start, end, found.ID, found.StartTime, found.EndTime, courseID)
	}

	slot := &model.ScheduleSlot{
		CourseID:  courseID,
		TeacherID: teacherID,
		Day:       day,
		StartTime: start,
		EndTime:   end,
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.logger.Info("Schedule slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("course_id", courseID),
		zap.String("day", day),
		zap.String("start_time", start),
		zap.String("end_time", end))

	return slot, nil
}

// Update применяет частичное обновление слота. Конфликт перепроверяется только
// когда среди переданных полей есть день или время; проверка идёт по текущему
// курсу слота, сам слот исключается из сравнения. Обновление, меняющее лишь
// преподавателя или курс, проверку не запускает
func (s *ScheduleService) Update(ctx context.Context, id int64, upd model.ScheduleSlotUpdate) (*model.ScheduleSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, notFound("schedule slot %d not found", id)
	}

	if upd.StartTime != nil {
		if err := model.ValidateClock(*upd.StartTime); err != nil {
			return nil, invalid("start_time: %v", err)
		}
	}
	if upd.EndTime != nil {
		if err := model.ValidateClock(*upd.EndTime); err != nil {
			return nil, invalid("end_time: %v", err)
		}
	}

	if upd.CourseID != nil {
		course, err := s.courseRepo.GetByID(ctx, *upd.CourseID)
		if err != nil {
			return nil, fmt.Errorf("get course: %w", err)
		}
		if course == nil {
			return nil, notFound("course %d not found", *upd.CourseID)
		}
	}
	if upd.TeacherID != nil {
		teacher, err := s.teacherRepo.GetByID(ctx, *upd.TeacherID)
		if err != nil {
			return nil, fmt.Errorf("get teacher: %w", err)
		}
		if teacher == nil {
			return nil, notFound("teacher %d not found", *upd.TeacherID)
		}
	}

	timeChanged := upd.Day != nil || upd.StartTime != nil || upd.EndTime != nil
	checkCourseID := slot.CourseID // конфликт проверяется по курсу до обновления

	if upd.CourseID != nil {
		slot.CourseID = *upd.CourseID
	}
	if upd.TeacherID != nil {
		slot.TeacherID = *upd.TeacherID
	}
	if upd.Day != nil {
		slot.Day = *upd.Day
	}
	if upd.StartTime != nil {
		slot.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		slot.EndTime = *upd.EndTime
	}

	if timeChanged {
		candidates, err := s.slotRepo.ListByCourseAndDay(ctx, checkCourseID, slot.Day)
		if err != nil {
			return nil, fmt.Errorf("list candidate slots: %w", err)
		}
		if found := findConflict(candidates, slot.Day, slot.StartTime, slot.EndTime, slot.ID); found != nil {
			return nil, conflict("slot %s %s-%s overlaps existing slot %d (%s-%s) for course %d",
				slot.Day, slot.StartTime, slot.EndTime, found.ID, found.StartTime, found.EndTime, checkCourseID)
		}
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}

	s.logger.Info("Schedule slot updated",
		zap.Int64("slot_id", slot.ID),
		zap.Bool("conflict_rechecked", timeChanged))

	return slot, nil
}

// Delete удаляет слот
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return notFound("schedule slot %d not found", id)
	}

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	s.logger.Info("Schedule slot deleted", zap.Int64("slot_id", id))

	return nil
}

// ListByCourse получает слоты курса
func (s *ScheduleService) ListByCourse(ctx context.Context, courseID int64) ([]*model.ScheduleSlot, error) {
	slots, err := s.slotRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list slots by course: %w", err)
	}

	if err := s.attachAssociations(ctx, slots); err != nil {
		return nil, err
	}

	return slots, nil
}

// ListByTeacher получает слоты преподавателя
func (s *ScheduleService) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.ScheduleSlot, error) {
	slots, err := s.slotRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list slots by teacher: %w", err)
	}

	if err := s.attachAssociations(ctx, slots); err != nil {
		return nil, err
	}

	return slots, nil
}

// ListByDay получает слоты дня; день сравнивается с учётом регистра
func (s *ScheduleService) ListByDay(ctx context.Context, day string) ([]*model.ScheduleSlot, error) {
	slots, err := s.slotRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list slots by day: %w", err)
	}

	if err := s.attachAssociations(ctx, slots); err != nil {
		return nil, err
	}

	return slots, nil
}

// ListByTimeRange получает слоты, начало или конец которых попадает в [from, to]
func (s *ScheduleService) ListByTimeRange(ctx context.Context, from, to string) ([]*model.ScheduleSlot, error) {
	if err := model.ValidateClock(from); err != nil {
		return nil, invalid("from: %v", err)
	}
	if err := model.ValidateClock(to); err != nil {
		return nil, invalid("to: %v", err)
	}

	slots, err := s.slotRepo.ListByTimeRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list slots by time range: %w", err)
	}

	if err := s.attachAssociations(ctx, slots); err != nil {
		return nil, err
	}

	return slots, nil
}

// Stats возвращает счётчики слотов по дням и курсам
func (s *ScheduleService) Stats(ctx context.Context) (*model.ScheduleStats, error) {
	total, err := s.slotRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count slots: %w", err)
	}

	perDay, err := s.slotRepo.CountPerDay(ctx)
	if err != nil {
		return nil, fmt.Errorf("count slots per day: %w", err)
	}

	perCourse, err := s.slotRepo.CountPerCourse(ctx)
	if err != nil {
		return nil, fmt.Errorf("count slots per course: %w", err)
	}

	return &model.ScheduleStats{
		Total:     total,
		PerDay:    perDay,
		PerCourse: perCourse,
	}, nil
}

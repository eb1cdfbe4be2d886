package service

import (
	"context"
	"time"

	"github.com/eduadmin/academia/internal/model"
)

// Интерфейсы репозиториев объявлены на стороне потребителя, чтобы
// бизнес-правила можно было тестировать на заглушках. Конкретные типы
// из internal/repository им удовлетворяют

type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
	List(ctx context.Context) ([]*model.Teacher, error)
	ListBySpecialty(ctx context.Context, specialty string) ([]*model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountWithCourses(ctx context.Context) (int64, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	List(ctx context.Context) ([]*model.Student, error)
	SearchByName(ctx context.Context, name string) ([]*model.Student, error)
	ListByRegisteredBetween(ctx context.Context, from, to time.Time) ([]*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountEnrolled(ctx context.Context) (int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context) ([]*model.Course, error)
	SearchByName(ctx context.Context, name string) ([]*model.Course, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Course, error)
	ListPopular(ctx context.Context, limit int) ([]*model.PopularCourse, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountByTeacher(ctx context.Context, teacherID int64) (int64, error)
	CountWithEnrollments(ctx context.Context) (int64, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error)
	List(ctx context.Context) ([]*model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*model.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*model.Enrollment, error)
	ListByCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Enrollment, error)
	Update(ctx context.Context, enrollment *model.Enrollment) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountByStudent(ctx context.Context, studentID int64) (int64, error)
	CountByCourse(ctx context.Context, courseID int64) (int64, error)
	CountPerCourse(ctx context.Context) ([]*model.CourseEnrollmentCount, error)
}

type SlotRepository interface {
	Create(ctx context.Context, slot *model.ScheduleSlot) error
	GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error)
	List(ctx context.Context) ([]*model.ScheduleSlot, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*model.ScheduleSlot, error)
	ListByCourseAndDay(ctx context.Context, courseID int64, day string) ([]*model.ScheduleSlot, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*model.ScheduleSlot, error)
	ListByDay(ctx context.Context, day string) ([]*model.ScheduleSlot, error)
	ListByTimeRange(ctx context.Context, from, to string) ([]*model.ScheduleSlot, error)
	Update(ctx context.Context, slot *model.ScheduleSlot) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountPerDay(ctx context.Context) ([]*model.DaySlotCount, error)
	CountPerCourse(ctx context.Context) ([]*model.CourseSlotCount, error)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eduadmin/academia/internal/model"
)

// Заглушки встраивают интерфейс: вызов не переопределённого метода
// падает с nil-паникой и сразу показывает неожиданное обращение к репозиторию

type fakeTeacherRepo struct {
	TeacherRepository
	getByID         func(ctx context.Context, id int64) (*model.Teacher, error)
	listBySpecialty func(ctx context.Context, specialty string) ([]*model.Teacher, error)
	delete          func(ctx context.Context, id int64) error
}

func (f *fakeTeacherRepo) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	return f.getByID(ctx, id)
}

func (f *fakeTeacherRepo) ListBySpecialty(ctx context.Context, specialty string) ([]*model.Teacher, error) {
	return f.listBySpecialty(ctx, specialty)
}

func (f *fakeTeacherRepo) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

type fakeStudentRepo struct {
	StudentRepository
	getByID func(ctx context.Context, id int64) (*model.Student, error)
	delete  func(ctx context.Context, id int64) error
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return f.getByID(ctx, id)
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

type fakeCourseRepo struct {
	CourseRepository
	getByID        func(ctx context.Context, id int64) (*model.Course, error)
	list           func(ctx context.Context) ([]*model.Course, error)
	countByTeacher func(ctx context.Context, teacherID int64) (int64, error)
	delete         func(ctx context.Context, id int64) error
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	return f.getByID(ctx, id)
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]*model.Course, error) {
	return f.list(ctx)
}

func (f *fakeCourseRepo) CountByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	return f.countByTeacher(ctx, teacherID)
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

type fakeEnrollmentRepo struct {
	EnrollmentRepository
	create                func(ctx context.Context, enrollment *model.Enrollment) error
	getByStudentAndCourse func(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error)
	countByStudent        func(ctx context.Context, studentID int64) (int64, error)
	countByCourse         func(ctx context.Context, courseID int64) (int64, error)
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return f.create(ctx, enrollment)
}

func (f *fakeEnrollmentRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error) {
	return f.getByStudentAndCourse(ctx, studentID, courseID)
}

func (f *fakeEnrollmentRepo) CountByStudent(ctx context.Context, studentID int64) (int64, error) {
	return f.countByStudent(ctx, studentID)
}

func (f *fakeEnrollmentRepo) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	return f.countByCourse(ctx, courseID)
}

type fakeSlotRepo struct {
	SlotRepository
	getByID            func(ctx context.Context, id int64) (*model.ScheduleSlot, error)
	listByCourseAndDay func(ctx context.Context, courseID int64, day string) ([]*model.ScheduleSlot, error)
	update             func(ctx context.Context, slot *model.ScheduleSlot) error
	delete             func(ctx context.Context, id int64) error
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error) {
	return f.getByID(ctx, id)
}

func (f *fakeSlotRepo) ListByCourseAndDay(ctx context.Context, courseID int64, day string) ([]*model.ScheduleSlot, error) {
	return f.listByCourseAndDay(ctx, courseID, day)
}

func (f *fakeSlotRepo) Update(ctx context.Context, slot *model.ScheduleSlot) error {
	return f.update(ctx, slot)
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func TestScheduleServiceUpdateConflictRecheck(t *testing.T) {
	stored := func() *model.ScheduleSlot {
		return slot(5, "Monday", "09:00:00", "10:00:00")
	}
	neighbor := slot(6, "Monday", "10:30:00", "11:30:00")

	tests := []struct {
		name          string
		upd           model.ScheduleSlotUpdate
		candidates    []*model.ScheduleSlot
		wantRechecks  int
		wantConflict  bool
		wantUpdated   bool
		wantTeacherID int64
	}{
		{
			name:          "teacher only change skips conflict check",
			upd:           model.ScheduleSlotUpdate{TeacherID: int64Ptr(2)},
			wantRechecks:  0,
			wantUpdated:   true,
			wantTeacherID: 2,
		},
		{
			name:          "course only change skips conflict check",
			upd:           model.ScheduleSlotUpdate{CourseID: int64Ptr(3)},
			wantRechecks:  0,
			wantUpdated:   true,
			wantTeacherID: 1,
		},
		{
			name:          "time change rechecks and passes when only itself overlaps",
			upd:           model.ScheduleSlotUpdate{StartTime: strPtr("09:30:00")},
			candidates:    []*model.ScheduleSlot{stored(), neighbor},
			wantRechecks:  1,
			wantUpdated:   true,
			wantTeacherID: 1,
		},
		{
			name:         "time change overlapping neighbor is rejected",
			upd:          model.ScheduleSlotUpdate{EndTime: strPtr("10:30:00")},
			candidates:   []*model.ScheduleSlot{stored(), neighbor},
			wantRechecks: 1,
			wantConflict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rechecks := 0
			updated := false

			slots := &fakeSlotRepo{
				getByID: func(ctx context.Context, id int64) (*model.ScheduleSlot, error) {
					return stored(), nil
				},
				listByCourseAndDay: func(ctx context.Context, courseID int64, day string) ([]*model.ScheduleSlot, error) {
					rechecks++
					assert.Equal(t, int64(1), courseID)
					return tt.candidates, nil
				},
				update: func(ctx context.Context, s *model.ScheduleSlot) error {
					updated = true
					return nil
				},
			}
			courses := &fakeCourseRepo{
				getByID: func(ctx context.Context, id int64) (*model.Course, error) {
					return &model.Course{ID: id, Name: "Algebra", TeacherID: 1}, nil
				},
			}
			teachers := &fakeTeacherRepo{
				getByID: func(ctx context.Context, id int64) (*model.Teacher, error) {
					return &model.Teacher{ID: id, Name: "Ivanova"}, nil
				},
			}

			svc := NewScheduleService(slots, courses, teachers, zap.NewNop())

			got, err := svc.Update(context.Background(), 5, tt.upd)

			assert.Equal(t, tt.wantRechecks, rechecks)
			assert.Equal(t, tt.wantUpdated, updated)

			if tt.wantConflict {
				require.Error(t, err)
				assert.True(t, IsConflict(err))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantTeacherID, got.TeacherID)
		})
	}
}

func TestEnrollmentServiceCreateDuplicate(t *testing.T) {
	created := 0
	var existing *model.Enrollment

	enrollments := &fakeEnrollmentRepo{
		getByStudentAndCourse: func(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error) {
			return existing, nil
		},
		create: func(ctx context.Context, e *model.Enrollment) error {
			created++
			e.ID = 100
			existing = e
			return nil
		},
	}
	students := &fakeStudentRepo{
		getByID: func(ctx context.Context, id int64) (*model.Student, error) {
			return &model.Student{ID: id, Name: "Petrov", Email: "petrov@example.com"}, nil
		},
	}
	courses := &fakeCourseRepo{
		getByID: func(ctx context.Context, id int64) (*model.Course, error) {
			return &model.Course{ID: id, Name: "Algebra", TeacherID: 1}, nil
		},
	}

	svc := NewEnrollmentService(enrollments, students, courses, &fakeTeacherRepo{}, zap.NewNop())

	first, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, created)

	// Повторная запись той же пары отклоняется до обращения к вставке
	_, err = svc.Create(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, 1, created)

	_, err = svc.Create(context.Background(), 1, 2)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Equal(t, 1, created)
}

func TestTeacherServiceDeleteRestricted(t *testing.T) {
	tests := []struct {
		name        string
		courses     int64
		wantDeleted bool
	}{
		{name: "delete forbidden while courses assigned", courses: 2},
		{name: "delete allowed without courses", courses: 0, wantDeleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false

			teachers := &fakeTeacherRepo{
				getByID: func(ctx context.Context, id int64) (*model.Teacher, error) {
					return &model.Teacher{ID: id, Name: "Ivanova"}, nil
				},
				delete: func(ctx context.Context, id int64) error {
					deleted = true
					return nil
				},
			}
			courses := &fakeCourseRepo{
				countByTeacher: func(ctx context.Context, teacherID int64) (int64, error) {
					return tt.courses, nil
				},
			}

			svc := NewTeacherService(teachers, courses, &fakeSlotRepo{}, zap.NewNop())

			err := svc.Delete(context.Background(), 7)

			assert.Equal(t, tt.wantDeleted, deleted)
			if tt.wantDeleted {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsConflict(err))
		})
	}
}

func TestStudentServiceDeleteRestricted(t *testing.T) {
	tests := []struct {
		name        string
		enrollments int64
		wantDeleted bool
	}{
		{name: "delete forbidden while enrollments exist", enrollments: 3},
		{name: "delete allowed without enrollments", enrollments: 0, wantDeleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false

			students := &fakeStudentRepo{
				getByID: func(ctx context.Context, id int64) (*model.Student, error) {
					return &model.Student{ID: id, Name: "Petrov", Email: "petrov@example.com"}, nil
				},
				delete: func(ctx context.Context, id int64) error {
					deleted = true
					return nil
				},
			}
			enrollments := &fakeEnrollmentRepo{
				countByStudent: func(ctx context.Context, studentID int64) (int64, error) {
					return tt.enrollments, nil
				},
			}

			svc := NewStudentService(students, enrollments, &fakeCourseRepo{}, zap.NewNop())

			err := svc.Delete(context.Background(), 4)

			assert.Equal(t, tt.wantDeleted, deleted)
			if tt.wantDeleted {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsConflict(err))
		})
	}
}

func TestCourseServiceDeleteRestricted(t *testing.T) {
	tests := []struct {
		name        string
		enrollments int64
		wantDeleted bool
	}{
		{name: "delete forbidden while enrollments exist", enrollments: 1},
		{name: "delete allowed without enrollments", enrollments: 0, wantDeleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false

			courses := &fakeCourseRepo{
				getByID: func(ctx context.Context, id int64) (*model.Course, error) {
					return &model.Course{ID: id, Name: "Algebra", TeacherID: 1}, nil
				},
				delete: func(ctx context.Context, id int64) error {
					deleted = true
					return nil
				},
			}
			enrollments := &fakeEnrollmentRepo{
				countByCourse: func(ctx context.Context, courseID int64) (int64, error) {
					return tt.enrollments, nil
				},
			}

			svc := NewCourseService(courses, &fakeTeacherRepo{}, enrollments, &fakeStudentRepo{}, &fakeSlotRepo{}, zap.NewNop())

			err := svc.Delete(context.Background(), 9)

			assert.Equal(t, tt.wantDeleted, deleted)
			if tt.wantDeleted {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsConflict(err))
		})
	}
}

func TestTeacherServiceListBySpecialtyAttachesCourses(t *testing.T) {
	teachers := &fakeTeacherRepo{
		listBySpecialty: func(ctx context.Context, specialty string) ([]*model.Teacher, error) {
			assert.Equal(t, "Mathematics", specialty)
			return []*model.Teacher{
				{ID: 1, Name: "Ivanova"},
				{ID: 2, Name: "Sidorov"},
			}, nil
		},
	}
	courses := &fakeCourseRepo{
		list: func(ctx context.Context) ([]*model.Course, error) {
			return []*model.Course{
				{ID: 10, Name: "Algebra", TeacherID: 1},
				{ID: 11, Name: "Geometry", TeacherID: 1},
				{ID: 12, Name: "Statistics", TeacherID: 3},
			}, nil
		},
	}

	svc := NewTeacherService(teachers, courses, &fakeSlotRepo{}, zap.NewNop())

	got, err := svc.ListBySpecialty(context.Background(), "Mathematics")
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Len(t, got[0].Courses, 2)
	assert.Equal(t, "Algebra", got[0].Courses[0].Name)
	assert.Equal(t, "Geometry", got[0].Courses[1].Name)
	assert.Empty(t, got[1].Courses)
}

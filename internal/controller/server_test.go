package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eduadmin/academia/internal/model"
	"github.com/eduadmin/academia/internal/service"
)

// Заглушки сервисов: методы с nil-полем возвращают нулевые значения

type stubTeachers struct {
	list    func(ctx context.Context) ([]*model.Teacher, error)
	getByID func(ctx context.Context, id int64) (*model.Teacher, error)
	create  func(ctx context.Context, name string, specialty *string) (*model.Teacher, error)
	del     func(ctx context.Context, id int64) error
}

func (s *stubTeachers) List(ctx context.Context) ([]*model.Teacher, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s *stubTeachers) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return &model.Teacher{ID: id}, nil
}

func (s *stubTeachers) ListBySpecialty(context.Context, string) ([]*model.Teacher, error) {
	return nil, nil
}

func (s *stubTeachers) Create(ctx context.Context, name string, specialty *string) (*model.Teacher, error) {
	if s.create != nil {
		return s.create(ctx, name, specialty)
	}
	return &model.Teacher{ID: 1, Name: name, Specialty: specialty}, nil
}

func (s *stubTeachers) Update(ctx context.Context, id int64, upd model.TeacherUpdate) (*model.Teacher, error) {
	return &model.Teacher{ID: id}, nil
}

func (s *stubTeachers) Delete(ctx context.Context, id int64) error {
	if s.del != nil {
		return s.del(ctx, id)
	}
	return nil
}

func (s *stubTeachers) Stats(context.Context) (*model.TeacherStats, error) {
	return &model.TeacherStats{Total: 3, WithCourses: 2, WithoutCourses: 1}, nil
}

type stubStudents struct{}

func (s *stubStudents) List(context.Context) ([]*model.Student, error)              { return nil, nil }
func (s *stubStudents) GetByID(_ context.Context, id int64) (*model.Student, error) {
	return &model.Student{ID: id}, nil
}
func (s *stubStudents) GetByEmail(context.Context, string) (*model.Student, error)    { return nil, nil }
func (s *stubStudents) SearchByName(context.Context, string) ([]*model.Student, error) {
	return nil, nil
}
func (s *stubStudents) ListByRegisteredBetween(context.Context, time.Time, time.Time) ([]*model.Student, error) {
	return nil, nil
}
func (s *stubStudents) Create(_ context.Context, name, email string) (*model.Student, error) {
	return &model.Student{ID: 1, Name: name, Email: email}, nil
}
func (s *stubStudents) Update(_ context.Context, id int64, _ model.StudentUpdate) (*model.Student, error) {
	return &model.Student{ID: id}, nil
}
func (s *stubStudents) Delete(context.Context, int64) error { return nil }
func (s *stubStudents) Stats(context.Context) (*model.StudentStats, error) {
	return &model.StudentStats{}, nil
}

type stubCourses struct {
	getByID func(ctx context.Context, id int64) (*model.Course, error)
}

func (s *stubCourses) List(context.Context) ([]*model.Course, error) { return nil, nil }
func (s *stubCourses) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return &model.Course{ID: id, Name: "Algebra"}, nil
}
func (s *stubCourses) SearchByName(context.Context, string) ([]*model.Course, error) {
	return nil, nil
}
func (s *stubCourses) ListByTeacher(context.Context, int64) ([]*model.Course, error) {
	return nil, nil
}
func (s *stubCourses) Popular(context.Context, int) ([]*model.PopularCourse, error) {
	return nil, nil
}
func (s *stubCourses) Create(_ context.Context, name string, teacherID int64) (*model.Course, error) {
	return &model.Course{ID: 1, Name: name, TeacherID: teacherID}, nil
}
func (s *stubCourses) Update(_ context.Context, id int64, _ model.CourseUpdate) (*model.Course, error) {
	return &model.Course{ID: id}, nil
}
func (s *stubCourses) Delete(context.Context, int64) error { return nil }
func (s *stubCourses) Stats(context.Context) (*model.CourseStats, error) {
	return &model.CourseStats{}, nil
}

type stubEnrollments struct{}

func (s *stubEnrollments) List(context.Context) ([]*model.Enrollment, error) { return nil, nil }
func (s *stubEnrollments) GetByID(_ context.Context, id int64) (*model.Enrollment, error) {
	return &model.Enrollment{ID: id}, nil
}
func (s *stubEnrollments) Create(_ context.Context, studentID, courseID int64) (*model.Enrollment, error) {
	return &model.Enrollment{ID: 1, StudentID: studentID, CourseID: courseID}, nil
}
func (s *stubEnrollments) Update(_ context.Context, id int64, _ model.EnrollmentUpdate) (*model.Enrollment, error) {
	return &model.Enrollment{ID: id}, nil
}
func (s *stubEnrollments) Delete(context.Context, int64) error { return nil }
func (s *stubEnrollments) Check(_ context.Context, studentID, courseID int64) (*model.EnrollmentCheck, error) {
	return &model.EnrollmentCheck{Enrolled: true, Enrollment: &model.Enrollment{ID: 1, StudentID: studentID, CourseID: courseID}}, nil
}
func (s *stubEnrollments) ListByStudent(context.Context, int64) ([]*model.Enrollment, error) {
	return nil, nil
}
func (s *stubEnrollments) ListByCourse(context.Context, int64) ([]*model.Enrollment, error) {
	return nil, nil
}
func (s *stubEnrollments) ListByCreatedBetween(context.Context, time.Time, time.Time) ([]*model.Enrollment, error) {
	return nil, nil
}
func (s *stubEnrollments) Stats(context.Context) (*model.EnrollmentStats, error) {
	return &model.EnrollmentStats{}, nil
}

type stubSchedule struct {
	create            func(ctx context.Context, courseID, teacherID int64, day, start, end string) (*model.ScheduleSlot, error)
	checkAvailability func(ctx context.Context, courseID int64, day, start, end string, excludeID int64) (*model.Availability, error)
	listByCourse      func(ctx context.Context, courseID int64) ([]*model.ScheduleSlot, error)
	list              func(ctx context.Context) ([]*model.ScheduleSlot, error)
}

func (s *stubSchedule) List(ctx context.Context) ([]*model.ScheduleSlot, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s *stubSchedule) GetByID(_ context.Context, id int64) (*model.ScheduleSlot, error) {
	return &model.ScheduleSlot{ID: id}, nil
}

func (s *stubSchedule) CheckAvailability(ctx context.Context, courseID int64, day, start, end string, excludeID int64) (*model.Availability, error) {
	if s.checkAvailability != nil {
		return s.checkAvailability(ctx, courseID, day, start, end, excludeID)
	}
	return &model.Availability{Available: true}, nil
}

func (s *stubSchedule) Create(ctx context.Context, courseID, teacherID int64, day, start, end string) (*model.ScheduleSlot, error) {
	if s.create != nil {
		return s.create(ctx, courseID, teacherID, day, start, end)
	}
	return &model.ScheduleSlot{ID: 1, CourseID: courseID, TeacherID: teacherID, Day: day, StartTime: start, EndTime: end}, nil
}

func (s *stubSchedule) Update(_ context.Context, id int64, _ model.ScheduleSlotUpdate) (*model.ScheduleSlot, error) {
	return &model.ScheduleSlot{ID: id}, nil
}

func (s *stubSchedule) Delete(context.Context, int64) error { return nil }

func (s *stubSchedule) ListByCourse(ctx context.Context, courseID int64) ([]*model.ScheduleSlot, error) {
	if s.listByCourse != nil {
		return s.listByCourse(ctx, courseID)
	}
	return nil, nil
}

func (s *stubSchedule) ListByTeacher(context.Context, int64) ([]*model.ScheduleSlot, error) {
	return nil, nil
}
func (s *stubSchedule) ListByDay(context.Context, string) ([]*model.ScheduleSlot, error) {
	return nil, nil
}
func (s *stubSchedule) ListByTimeRange(context.Context, string, string) ([]*model.ScheduleSlot, error) {
	return nil, nil
}
func (s *stubSchedule) Stats(context.Context) (*model.ScheduleStats, error) {
	return &model.ScheduleStats{}, nil
}

func newTestServer(teachers *stubTeachers, schedule *stubSchedule) *httptest.Server {
	if teachers == nil {
		teachers = &stubTeachers{}
	}
	if schedule == nil {
		schedule = &stubSchedule{}
	}
	srv := NewServer(teachers, &stubStudents{}, &stubCourses{}, &stubEnrollments{}, schedule, nil, zap.NewNop())
	return httptest.NewServer(srv.Router())
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestHealth(t *testing.T) {
	app := newTestServer(nil, nil)
	defer app.Close()

	resp, err := http.Get(app.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateTeacher(t *testing.T) {
	app := newTestServer(nil, nil)
	defer app.Close()

	body := bytes.NewBufferString(`{"name":"Anna Petrova","specialty":"Mathematics"}`)
	resp, err := http.Post(app.URL+"/api/teachers", "application/json", body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, "teacher created", env.Message)
}

func TestCreateTeacherMissingName(t *testing.T) {
	app := newTestServer(nil, nil)
	defer app.Close()

	resp, err := http.Post(app.URL+"/api/teachers", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "name is required", env.Error)
}

func TestGetTeacherNotFound(t *testing.T) {
	teachers := &stubTeachers{
		getByID: func(_ context.Context, id int64) (*model.Teacher, error) {
			return nil, &service.NotFoundError{}
		},
	}
	app := newTestServer(teachers, nil)
	defer app.Close()

	resp, err := http.Get(app.URL + "/api/teachers/99")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetTeacherBadID(t *testing.T) {
	app := newTestServer(nil, nil)
	defer app.Close()

	resp, err := http.Get(app.URL + "/api/teachers/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteTeacherWithCourses(t *testing.T) {
	teachers := &stubTeachers{
		del: func(context.Context, int64) error {
			return &service.ConflictError{}
		},
	}
	app := newTestServer(teachers, nil)
	defer app.Close()

	req, err := http.NewRequest(http.MethodDelete, app.URL+"/api/teachers/1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateSlotConflict(t *testing.T) {
	schedule := &stubSchedule{
		create: func(context.Context, int64, int64, string, string, string) (*model.ScheduleSlot, error) {
			return nil, &service.ConflictError{}
		},
	}
	app := newTestServer(nil, schedule)
	defer app.Close()

	body := bytes.NewBufferString(`{"course_id":1,"teacher_id":1,"day":"Monday","start_time":"09:30:00","end_time":"10:30:00"}`)
	resp, err := http.Post(app.URL+"/api/schedule", "application/json", body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
}

func TestCreateSlotMissingFields(t *testing.T) {
	app := newTestServer(nil, nil)
	defer app.Close()

	body := bytes.NewBufferString(`{"course_id":1,"day":"Monday"}`)
	resp, err := http.Post(app.URL+"/api/schedule", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckAvailability(t *testing.T) {
	var gotExclude int64
	schedule := &stubSchedule{
		checkAvailability: func(_ context.Context, courseID int64, day, start, end string, excludeID int64) (*model.Availability, error) {
			gotExclude = excludeID
			return &model.Availability{Available: false, Conflict: &model.ScheduleSlot{ID: 5}}, nil
		},
	}
	app := newTestServer(nil, schedule)
	defer app.Close()

	resp, err := http.Get(app.URL + "/api/schedule/availability?course_id=1&day=Monday&start_time=09:30:00&end_time=10:30:00&exclude_id=7")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(7), gotExclude)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
}

func TestCheckAvailabilityMissingParams(t *testing.T) {
	app := newTestServer(nil, nil)
	defer app.Close()

	resp, err := http.Get(app.URL + "/api/schedule/availability?course_id=1&day=Monday")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateSlotEmptyBody(t *testing.T) {
	app := newTestServer(nil, nil)
	defer app.Close()

	req, err := http.NewRequest(http.MethodPut, app.URL+"/api/schedule/1", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInternalErrorIsMasked(t *testing.T) {
	teachers := &stubTeachers{
		list: func(context.Context) ([]*model.Teacher, error) {
			return nil, errors.New("pool exhausted")
		},
	}
	app := newTestServer(teachers, nil)
	defer app.Close()

	resp, err := http.Get(app.URL + "/api/teachers")
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, "internal server error", env.Error)
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestServer(nil, nil)
	defer app.Close()

	req, err := http.NewRequest(http.MethodGet, app.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "test-request-id")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "test-request-id", resp.Header.Get("X-Request-ID"))
}

func TestCourseWeekImage(t *testing.T) {
	schedule := &stubSchedule{
		listByCourse: func(context.Context, int64) ([]*model.ScheduleSlot, error) {
			return []*model.ScheduleSlot{
				{ID: 1, CourseID: 1, TeacherID: 1, Day: "Monday", StartTime: "09:00:00", EndTime: "10:30:00"},
				{ID: 2, CourseID: 1, TeacherID: 1, Day: "Thursday", StartTime: "14:00:00", EndTime: "16:00:00"},
			}, nil
		},
	}
	app := newTestServer(nil, schedule)
	defer app.Close()

	resp, err := http.Get(app.URL + "/api/schedule/course/1/image")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestTeacherStatsWithoutCache(t *testing.T) {
	app := newTestServer(nil, nil)
	defer app.Close()

	resp, err := http.Get(app.URL + "/api/teachers/stats")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
}

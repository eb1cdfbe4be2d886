package model

type TeacherStats struct {
	Total          int64 `json:"total"`
	WithCourses    int64 `json:"with_courses"`
	WithoutCourses int64 `json:"without_courses"`
}

type StudentStats struct {
	Total      int64 `json:"total"`
	Enrolled   int64 `json:"enrolled"`
	Unenrolled int64 `json:"unenrolled"`
}

type CourseStats struct {
	Total              int64 `json:"total"`
	WithEnrollments    int64 `json:"with_enrollments"`
	WithoutEnrollments int64 `json:"without_enrollments"`
}

// CourseEnrollmentCount — строка рейтинга курсов по числу записей
type CourseEnrollmentCount struct {
	CourseID    int64  `json:"course_id"`
	CourseName  string `json:"course_name"`
	Enrollments int64  `json:"enrollments"`
}

type EnrollmentStats struct {
	Total     int64                    `json:"total"`
	PerCourse []*CourseEnrollmentCount `json:"per_course"`
}

type DaySlotCount struct {
	Day   string `json:"day"`
	Slots int64  `json:"slots"`
}

type CourseSlotCount struct {
	CourseID   int64  `json:"course_id"`
	CourseName string `json:"course_name"`
	Slots      int64  `json:"slots"`
}

type ScheduleStats struct {
	Total     int64              `json:"total"`
	PerDay    []*DaySlotCount    `json:"per_day"`
	PerCourse []*CourseSlotCount `json:"per_course"`
}

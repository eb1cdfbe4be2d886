package model

import "time"

type Course struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TeacherID int64     `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Teacher     *Teacher        `json:"teacher,omitempty"`
	Enrollments []*Enrollment   `json:"enrollments,omitempty"`
	Slots       []*ScheduleSlot `json:"schedule_slots,omitempty"`
}

type CourseUpdate struct {
	Name      *string `json:"name"`
	TeacherID *int64  `json:"teacher_id"`
}

// PopularCourse — курс с количеством записанных студентов
type PopularCourse struct {
	Course      *Course `json:"course"`
	Enrollments int64   `json:"enrollments"`
}

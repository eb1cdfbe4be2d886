package model

import "time"

type Enrollment struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	CourseID  int64     `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}

type EnrollmentUpdate struct {
	StudentID *int64 `json:"student_id"`
	CourseID  *int64 `json:"course_id"`
}

// EnrollmentCheck — результат проверки "записан ли студент на курс"
type EnrollmentCheck struct {
	Enrolled   bool        `json:"enrolled"`
	Enrollment *Enrollment `json:"enrollment"`
}

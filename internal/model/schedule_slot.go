package model

import "time"

type ScheduleSlot struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"course_id"`
	TeacherID int64     `json:"teacher_id"`
	Day       string    `json:"day"`        // свободная строка, регистрозависимая
	StartTime string    `json:"start_time"` // HH:MM:SS
	EndTime   string    `json:"end_time"`   // HH:MM:SS
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Course  *Course  `json:"course,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`
}

type ScheduleSlotUpdate struct {
	CourseID  *int64  `json:"course_id"`
	TeacherID *int64  `json:"teacher_id"`
	Day       *string `json:"day"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// Availability — ответ проверки доступности интервала
type Availability struct {
	Available bool          `json:"available"`
	Conflict  *ScheduleSlot `json:"conflict"`
}

package model

import "time"

type Teacher struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Specialty *string   `json:"specialty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Заполняются при сборке детальных ответов, не из таблицы teachers
	Courses []*Course       `json:"courses,omitempty"`
	Slots   []*ScheduleSlot `json:"schedule_slots,omitempty"`
}

// TeacherUpdate перечисляет поля частичного обновления; применяются только non-nil
type TeacherUpdate struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
}

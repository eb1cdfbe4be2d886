package model

import "time"

type Student struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Enrollments []*Enrollment `json:"enrollments,omitempty"`
}

type StudentUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

package entity

import "time"

type User struct {
	ID uint64

	UserID  string
	Name    string
	Email   string
	Company string

	CreatedAt time.Time
	UpdatedAt time.Time
}

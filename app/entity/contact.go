package entity

import "time"

type Contact struct {
	ID uint64

	ContactID string
	Name      string
	Email     string
	Subject   string
	Message   string

	CreatedAt time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Plan struct {
	ID uint64

	PlanID   string
	Name     string
	Features []string
	Price    decimal.Decimal
	Currency string

	CreatedAt time.Time
	UpdatedAt time.Time
}

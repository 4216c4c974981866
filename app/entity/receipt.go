package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Receipt struct {
	ID uint64

	ReceiptID   string
	PaymentID   string
	UserID      string
	PackageName string
	Amount      decimal.Decimal
	Currency    string
	IssuedAt    time.Time

	CreatedAt time.Time
}

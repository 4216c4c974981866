package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the ledger-side payment lifecycle state. It mirrors what the
// gateway last reported and is never accepted as a raw string.
type Status string

const (
	StatusCreated  Status = "CREATED"
	StatusApproved Status = "APPROVED"
	StatusCaptured Status = "CAPTURED"
	StatusVoided   Status = "VOIDED"
	StatusFailed   Status = "FAILED"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusCreated:
		return StatusCreated, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusCaptured:
		return StatusCaptured, nil
	case StatusVoided:
		return StatusVoided, nil
	case StatusFailed:
		return StatusFailed, nil
	default:
		return "", fmt.Errorf("unknown payment status %q", raw)
	}
}

// CanTransition reports whether moving from one status to another follows
// the gateway lifecycle: CREATED -> APPROVED -> CAPTURED, with VOIDED and
// FAILED reachable from any pre-capture state.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusCreated:
		return to == StatusApproved || to == StatusCaptured || to == StatusVoided || to == StatusFailed
	case StatusApproved:
		return to == StatusCaptured || to == StatusVoided || to == StatusFailed
	default:
		return false
	}
}

// StatusFromCaptureStatus maps a gateway capture status onto the ledger
// lifecycle instead of storing the provider string verbatim.
func StatusFromCaptureStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "COMPLETED", "CAPTURED":
		return StatusCaptured
	case "PENDING":
		return StatusApproved
	default:
		return StatusFailed
	}
}

type Payment struct {
	ID uint64

	PaymentID     string
	OrderID       string
	TransactionID string

	UserID   string
	UserName string

	Status Status

	PayerEmail string
	PayerName  string

	PackageName     string
	PackageFeatures []string

	Amount   decimal.Decimal
	Currency string

	// CreateTime is the gateway-reported creation timestamp. Capture
	// overwrites it with the transaction timestamp; CreatedAt below keeps
	// the audit insert time.
	CreateTime time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentStats is the aggregate view served to the admin dashboard.
// APPROVED and VOIDED records count toward the totals only.
type PaymentStats struct {
	TotalPayments    int64
	TotalAmount      decimal.Decimal
	CapturedPayments int64
	CapturedAmount   decimal.Decimal
	CreatedPayments  int64
	FailedPayments   int64
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/engagesphere/engagesphere-backend/app/entity"
)

type receiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	FindByReceiptID(ctx context.Context, receiptID string) (*entity.Receipt, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Receipt, error)
}

type receiptPaymentLookup interface {
	FindByPaymentID(ctx context.Context, paymentID string) (*entity.Payment, error)
}

type ReceiptService struct {
	receiptRepo receiptRepository
	payments    receiptPaymentLookup
}

func NewReceiptService(receiptRepo receiptRepository, payments receiptPaymentLookup) *ReceiptService {
	return &ReceiptService{receiptRepo: receiptRepo, payments: payments}
}

// CreateReceipt materializes a receipt from an existing ledger record. The
// amount and package are copied from the payment, not taken from the caller.
func (s *ReceiptService) CreateReceipt(ctx context.Context, paymentID string) (*entity.Receipt, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, fmt.Errorf("%w: paymentId is required", ErrInvalidRequest)
	}

	payment, err := s.payments.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	now := time.Now().UTC()
	receipt := &entity.Receipt{
		ReceiptID:   uuid.NewString(),
		PaymentID:   payment.PaymentID,
		UserID:      payment.UserID,
		PackageName: payment.PackageName,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		IssuedAt:    now,
		CreatedAt:   now,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *ReceiptService) GetReceipt(ctx context.Context, receiptID string) (*entity.Receipt, error) {
	receiptID = strings.TrimSpace(receiptID)
	if receiptID == "" {
		return nil, fmt.Errorf("%w: receiptId is required", ErrInvalidRequest)
	}

	receipt, err := s.receiptRepo.FindByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, ErrReceiptNotFound
	}
	return receipt, nil
}

func (s *ReceiptService) ListReceiptsByUser(ctx context.Context, userID string) ([]*entity.Receipt, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidRequest)
	}
	return s.receiptRepo.ListByUser(ctx, userID)
}

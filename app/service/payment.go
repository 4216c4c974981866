package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/engagesphere/engagesphere-backend/app/entity"
	"github.com/engagesphere/engagesphere-backend/app/factory"
	"github.com/engagesphere/engagesphere-backend/app/gateway"
	"github.com/engagesphere/engagesphere-backend/app/repository"
)

const defaultCurrency = "USD"

type paymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByPaymentID(ctx context.Context, paymentID string) (*entity.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error)
	ApplyCapture(ctx context.Context, capture repository.CaptureUpdate) (*entity.Payment, error)
	UpdateStatus(ctx context.Context, paymentID string, status entity.Status) error
	Delete(ctx context.Context, paymentID string) error
	ListAll(ctx context.Context) ([]*entity.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Payment, error)
	Stats(ctx context.Context) (*entity.PaymentStats, error)
}

type userDirectory interface {
	FindByUserID(ctx context.Context, userID string) (*entity.User, error)
}

type orderGateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, description, customID string) (*gateway.OrderResult, error)
	CaptureOrder(ctx context.Context, orderID string) (*gateway.CaptureResult, error)
}

type PaymentService struct {
	paymentRepo paymentRepository
	users       userDirectory
	gateway     orderGateway
	brandName   string
	logger      logrus.FieldLogger
}

func NewPaymentService(paymentRepo paymentRepository, users userDirectory, orderGW orderGateway, brandName string) *PaymentService {
	brandName = strings.TrimSpace(brandName)
	if brandName == "" {
		brandName = "EngageSphere"
	}

	return &PaymentService{
		paymentRepo: paymentRepo,
		users:       users,
		gateway:     orderGW,
		brandName:   brandName,
		logger:      factory.NewModuleLogger("payment-service"),
	}
}

type CreateOrderInput struct {
	Amount          string
	PackageName     string
	PackageFeatures []string
	UserID          string
}

// CreateOrder validates the paying user, creates the remote order, and
// persists the initial ledger record. The remote create and the local write
// are not atomic: a failed write after a successful remote create leaves an
// orphaned remote order, which is logged for manual reconciliation.
func (s *PaymentService) CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.Payment, string, error) {
	amountRaw := strings.TrimSpace(input.Amount)
	packageName := strings.TrimSpace(input.PackageName)
	userID := strings.TrimSpace(input.UserID)
	if amountRaw == "" || packageName == "" || userID == "" {
		return nil, "", fmt.Errorf("%w: amount, packageName and userId are required", ErrInvalidRequest)
	}

	amount, err := decimal.NewFromString(amountRaw)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, "", fmt.Errorf("%w: amount must be a positive decimal", ErrInvalidRequest)
	}

	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidUser
	}

	description := fmt.Sprintf("%s – %s Package", packageName, s.brandName)
	customID := fmt.Sprintf("pkg_%d", time.Now().UnixMilli())

	order, err := s.gateway.CreateOrder(ctx, amount, defaultCurrency, description, customID)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	payment := &entity.Payment{
		PaymentID:       uuid.NewString(),
		OrderID:         order.OrderID,
		UserID:          user.UserID,
		UserName:        user.Name,
		Status:          entity.StatusCreated,
		PackageName:     packageName,
		PackageFeatures: cloneFeatures(input.PackageFeatures),
		Amount:          amount,
		Currency:        defaultCurrency,
		CreateTime:      now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.logger.WithError(err).WithField("order_id", order.OrderID).Error("Ledger write failed after remote order creation, remote order is orphaned")
		return nil, "", err
	}

	return payment, order.ApproveLink, nil
}

// CaptureOrder captures the remote order and mirrors the result onto the
// local record. A capture with no matching local record returns (nil, nil);
// the ledger is not authoritative over the gateway.
func (s *PaymentService) CaptureOrder(ctx context.Context, orderID string) (*entity.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: orderId is required", ErrInvalidRequest)
	}

	capture, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payerName := strings.TrimSpace(capture.PayerGivenName + " " + capture.PayerSurname)

	payment, err := s.paymentRepo.ApplyCapture(ctx, repository.CaptureUpdate{
		OrderID:       capture.OrderID,
		TransactionID: capture.TransactionID,
		Status:        entity.StatusFromCaptureStatus(capture.Status),
		PayerEmail:    capture.PayerEmail,
		PayerName:     payerName,
		CreateTime:    capture.CreateTime,
	})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		s.logger.WithField("order_id", capture.OrderID).Warn("Captured order has no ledger record")
		return nil, nil
	}

	return payment, nil
}

func (s *PaymentService) GetPaymentDetails(ctx context.Context, paymentID string) (*entity.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, fmt.Errorf("%w: paymentId is required", ErrInvalidRequest)
	}

	payment, err := s.paymentRepo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *PaymentService) ListAllPayments(ctx context.Context) ([]*entity.Payment, error) {
	return s.paymentRepo.ListAll(ctx)
}

func (s *PaymentService) ListPaymentsByUser(ctx context.Context, userID string) ([]*entity.Payment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidRequest)
	}
	return s.paymentRepo.ListByUser(ctx, userID)
}

func (s *PaymentService) ComputeStats(ctx context.Context) (*entity.PaymentStats, error) {
	return s.paymentRepo.Stats(ctx)
}

// UpdateStatus is the administrative status override. Unlike capture, it
// enforces lifecycle legality via entity.CanTransition.
func (s *PaymentService) UpdateStatus(ctx context.Context, paymentID, statusRaw string) (*entity.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, fmt.Errorf("%w: paymentId is required", ErrInvalidRequest)
	}

	status, err := entity.ParseStatus(statusRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	payment, err := s.paymentRepo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	if !entity.CanTransition(payment.Status, status) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatus, payment.Status, status)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, paymentID, status); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	payment.Status = status
	payment.UpdatedAt = time.Now().UTC()
	return payment, nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, paymentID string) error {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return fmt.Errorf("%w: paymentId is required", ErrInvalidRequest)
	}

	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	return nil
}

func cloneFeatures(src []string) []string {
	if len(src) == 0 {
		return []string{}
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

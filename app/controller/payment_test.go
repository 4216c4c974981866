package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/engagesphere/engagesphere-backend/app/entity"
	"github.com/engagesphere/engagesphere-backend/app/gateway"
	"github.com/engagesphere/engagesphere-backend/app/repository"
	"github.com/engagesphere/engagesphere-backend/app/service"
	"github.com/engagesphere/engagesphere-backend/app/types"
)

type controllerPaymentRepo struct {
	createFn          func(ctx context.Context, payment *entity.Payment) error
	findByPaymentIDFn func(ctx context.Context, paymentID string) (*entity.Payment, error)
	findByOrderIDFn   func(ctx context.Context, orderID string) (*entity.Payment, error)
	applyCaptureFn    func(ctx context.Context, capture repository.CaptureUpdate) (*entity.Payment, error)
	updateStatusFn    func(ctx context.Context, paymentID string, status entity.Status) error
	deleteFn          func(ctx context.Context, paymentID string) error
	listAllFn         func(ctx context.Context) ([]*entity.Payment, error)
	listByUserFn      func(ctx context.Context, userID string) ([]*entity.Payment, error)
	statsFn           func(ctx context.Context) (*entity.PaymentStats, error)
}

func (r *controllerPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if r.createFn != nil {
		return r.createFn(ctx, payment)
	}
	return nil
}

func (r *controllerPaymentRepo) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Payment, error) {
	if r.findByPaymentIDFn != nil {
		return r.findByPaymentIDFn(ctx, paymentID)
	}
	return nil, nil
}

func (r *controllerPaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	if r.findByOrderIDFn != nil {
		return r.findByOrderIDFn(ctx, orderID)
	}
	return nil, nil
}

func (r *controllerPaymentRepo) ApplyCapture(ctx context.Context, capture repository.CaptureUpdate) (*entity.Payment, error) {
	if r.applyCaptureFn != nil {
		return r.applyCaptureFn(ctx, capture)
	}
	return nil, nil
}

func (r *controllerPaymentRepo) UpdateStatus(ctx context.Context, paymentID string, status entity.Status) error {
	if r.updateStatusFn != nil {
		return r.updateStatusFn(ctx, paymentID, status)
	}
	return nil
}

func (r *controllerPaymentRepo) Delete(ctx context.Context, paymentID string) error {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, paymentID)
	}
	return nil
}

func (r *controllerPaymentRepo) ListAll(ctx context.Context) ([]*entity.Payment, error) {
	if r.listAllFn != nil {
		return r.listAllFn(ctx)
	}
	return []*entity.Payment{}, nil
}

func (r *controllerPaymentRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Payment, error) {
	if r.listByUserFn != nil {
		return r.listByUserFn(ctx, userID)
	}
	return []*entity.Payment{}, nil
}

func (r *controllerPaymentRepo) Stats(ctx context.Context) (*entity.PaymentStats, error) {
	if r.statsFn != nil {
		return r.statsFn(ctx)
	}
	return &entity.PaymentStats{}, nil
}

type controllerUserDirectory struct {
	findFn func(ctx context.Context, userID string) (*entity.User, error)
}

func (d *controllerUserDirectory) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	if d.findFn != nil {
		return d.findFn(ctx, userID)
	}
	return &entity.User{UserID: userID, Name: "Ada Lovelace"}, nil
}

type controllerOrderGateway struct {
	createFn  func(ctx context.Context, amount decimal.Decimal, currency, description, customID string) (*gateway.OrderResult, error)
	captureFn func(ctx context.Context, orderID string) (*gateway.CaptureResult, error)
}

func (g *controllerOrderGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, description, customID string) (*gateway.OrderResult, error) {
	if g.createFn != nil {
		return g.createFn(ctx, amount, currency, description, customID)
	}
	return &gateway.OrderResult{OrderID: "ORDER-1", ApproveLink: "https://paypal.example/approve/ORDER-1"}, nil
}

func (g *controllerOrderGateway) CaptureOrder(ctx context.Context, orderID string) (*gateway.CaptureResult, error) {
	if g.captureFn != nil {
		return g.captureFn(ctx, orderID)
	}
	return &gateway.CaptureResult{OrderID: orderID, TransactionID: "TXN-1", Status: "COMPLETED"}, nil
}

func newControllerForTest(repo *controllerPaymentRepo, users *controllerUserDirectory, gw *controllerOrderGateway) *PaymentController {
	return NewPaymentController(service.NewPaymentService(repo, users, gw, "EngageSphere"))
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateOrderBadBody(t *testing.T) {
	ctrl := newControllerForTest(&controllerPaymentRepo{}, &controllerUserDirectory{}, &controllerOrderGateway{})
	e := echo.New()
	ctx, rec := newJSONContext(e, http.MethodPost, "/payment/create", "{bad")

	if err := ctrl.CreateOrder(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	ctrl := newControllerForTest(&controllerPaymentRepo{}, &controllerUserDirectory{}, &controllerOrderGateway{})
	e := echo.New()
	ctx, rec := newJSONContext(e, http.MethodPost, "/payment/create", `{"amount":"49.99","packageName":"Pro","packageFeatures":["analytics"],"userId":"user-1"}`)

	_ = ctrl.CreateOrder(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload types.CreateOrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.ApproveLink != "https://paypal.example/approve/ORDER-1" {
		t.Fatalf("unexpected approve link: %s", payload.ApproveLink)
	}
	if payload.Payment == nil || payload.Payment.OrderID != "ORDER-1" || payload.Payment.Status != "CREATED" {
		t.Fatalf("unexpected payment payload: %+v", payload.Payment)
	}
}

func TestCreateOrderUnknownUser(t *testing.T) {
	users := &controllerUserDirectory{findFn: func(context.Context, string) (*entity.User, error) { return nil, nil }}
	ctrl := newControllerForTest(&controllerPaymentRepo{}, users, &controllerOrderGateway{})
	e := echo.New()
	ctx, rec := newJSONContext(e, http.MethodPost, "/payment/create", `{"amount":"49.99","packageName":"Pro","userId":"user-x"}`)

	_ = ctrl.CreateOrder(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid userId") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCaptureOrderSuccess(t *testing.T) {
	captured := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	repo := &controllerPaymentRepo{applyCaptureFn: func(_ context.Context, capture repository.CaptureUpdate) (*entity.Payment, error) {
		return &entity.Payment{
			PaymentID:     "pay-1",
			OrderID:       capture.OrderID,
			TransactionID: capture.TransactionID,
			Status:        capture.Status,
			Amount:        decimal.NewFromInt(50),
			Currency:      "USD",
			CreateTime:    captured,
			CreatedAt:     captured,
			UpdatedAt:     captured,
		}, nil
	}}
	ctrl := newControllerForTest(repo, &controllerUserDirectory{}, &controllerOrderGateway{})
	e := echo.New()
	ctx, rec := newJSONContext(e, http.MethodPost, "/payment/capture", `{"orderID":"ORDER-1"}`)

	_ = ctrl.CaptureOrder(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload types.CaptureOrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Message != "Payment captured & updated" {
		t.Fatalf("unexpected message: %s", payload.Message)
	}
	if payload.Payment == nil || payload.Payment.Status != "CAPTURED" || payload.Payment.TransactionID != "TXN-1" {
		t.Fatalf("unexpected payment payload: %+v", payload.Payment)
	}
}

func TestCaptureOrderMissingOrderID(t *testing.T) {
	ctrl := newControllerForTest(&controllerPaymentRepo{}, &controllerUserDirectory{}, &controllerOrderGateway{})
	e := echo.New()
	ctx, rec := newJSONContext(e, http.MethodPost, "/payment/capture", `{}`)

	_ = ctrl.CaptureOrder(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCaptureOrderDeclined(t *testing.T) {
	gw := &controllerOrderGateway{captureFn: func(context.Context, string) (*gateway.CaptureResult, error) {
		return nil, &gateway.CaptureDeclinedError{Detail: json.RawMessage(`{"details":[{"issue":"ORDER_NOT_APPROVED"}]}`)}
	}}
	ctrl := newControllerForTest(&controllerPaymentRepo{}, &controllerUserDirectory{}, gw)
	e := echo.New()
	ctx, rec := newJSONContext(e, http.MethodPost, "/payment/capture", `{"orderId":"ORDER-1"}`)

	_ = ctrl.CaptureOrder(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var payload types.CaptureErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Error != "Order cannot be captured. Ensure it is approved by the buyer." {
		t.Fatalf("unexpected error message: %s", payload.Error)
	}
	if !strings.Contains(string(payload.Details), "ORDER_NOT_APPROVED") {
		t.Fatalf("expected provider details, got %s", string(payload.Details))
	}
}

func TestCaptureOrderWithoutLedgerRecord(t *testing.T) {
	ctrl := newControllerForTest(&controllerPaymentRepo{}, &controllerUserDirectory{}, &controllerOrderGateway{})
	e := echo.New()
	ctx, rec := newJSONContext(e, http.MethodPost, "/payment/capture", `{"orderId":"ORDER-ORPHAN"}`)

	_ = ctrl.CaptureOrder(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if string(payload["payment"]) != "null" {
		t.Fatalf("expected null payment, got %s", string(payload["payment"]))
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	ctrl := newControllerForTest(&controllerPaymentRepo{}, &controllerUserDirectory{}, &controllerOrderGateway{})
	e := echo.New()
	ctx, rec := newJSONContext(e, http.MethodPost, "/payment/get", `{"paymentId":"pay-x"}`)

	_ = ctrl.GetPayment(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetPaymentStats(t *testing.T) {
	repo := &controllerPaymentRepo{statsFn: func(context.Context) (*entity.PaymentStats, error) {
		return &entity.PaymentStats{
			TotalPayments:    5,
			TotalAmount:      decimal.NewFromInt(70),
			CapturedPayments: 3,
			CapturedAmount:   decimal.NewFromInt(60),
			CreatedPayments:  2,
		}, nil
	}}
	ctrl := newControllerForTest(repo, &controllerUserDirectory{}, &controllerOrderGateway{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/payment/stats", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	_ = ctrl.GetPaymentStats(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Success bool               `json:"success"`
		Data    types.PaymentStats `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !payload.Success || payload.Data.TotalAmount != 70 || payload.Data.CapturedPayments != 3 {
		t.Fatalf("unexpected stats payload: %+v", payload)
	}
}

func TestUpdatePaymentStatusIllegalTransition(t *testing.T) {
	repo := &controllerPaymentRepo{findByPaymentIDFn: func(context.Context, string) (*entity.Payment, error) {
		return &entity.Payment{PaymentID: "pay-1", Status: entity.StatusCaptured}, nil
	}}
	ctrl := newControllerForTest(repo, &controllerUserDirectory{}, &controllerOrderGateway{})
	e := echo.New()
	ctx, rec := newJSONContext(e, http.MethodPost, "/payment/status", `{"paymentId":"pay-1","status":"CREATED"}`)

	_ = ctrl.UpdatePaymentStatus(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestDeletePaymentNotFound(t *testing.T) {
	repo := &controllerPaymentRepo{deleteFn: func(context.Context, string) error {
		return repository.ErrPaymentNotFound
	}}
	ctrl := newControllerForTest(repo, &controllerUserDirectory{}, &controllerOrderGateway{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/payment/pay-x", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("paymentId")
	ctx.SetParamValues("pay-x")

	_ = ctrl.DeletePayment(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

package types

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

type CreateOrderRequest struct {
	Amount          json.Number `json:"amount"`
	PackageName     string      `json:"packageName"`
	PackageFeatures []string    `json:"packageFeatures"`
	UserID          string      `json:"userId"`
}

func NewCreateOrderRequestFromContext(ctx echo.Context) (*CreateOrderRequest, error) {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.PackageName = strings.TrimSpace(body.PackageName)
	body.UserID = strings.TrimSpace(body.UserID)
	return &body, nil
}

func (r *CreateOrderRequest) Validate() error {
	if strings.TrimSpace(r.Amount.String()) == "" {
		return errors.New("amount is required")
	}
	if r.PackageName == "" {
		return errors.New("packageName is required")
	}
	if r.UserID == "" {
		return errors.New("userId is required")
	}
	return nil
}

// CaptureOrderRequest accepts both spellings the frontend has used over
// time: orderID and orderId.
type CaptureOrderRequest struct {
	OrderIDUpper string `json:"orderID"`
	OrderIDLower string `json:"orderId"`
}

func NewCaptureOrderRequestFromContext(ctx echo.Context) (*CaptureOrderRequest, error) {
	var body CaptureOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.OrderIDUpper = strings.TrimSpace(body.OrderIDUpper)
	body.OrderIDLower = strings.TrimSpace(body.OrderIDLower)
	return &body, nil
}

func (r *CaptureOrderRequest) OrderID() string {
	if r.OrderIDUpper != "" {
		return r.OrderIDUpper
	}
	return r.OrderIDLower
}

func (r *CaptureOrderRequest) Validate() error {
	if r.OrderID() == "" {
		return errors.New("orderId (or orderID) is required")
	}
	return nil
}

type GetPaymentRequest struct {
	PaymentID string `json:"paymentId"`
}

func NewGetPaymentRequestFromContext(ctx echo.Context) (*GetPaymentRequest, error) {
	var body GetPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.PaymentID = strings.TrimSpace(body.PaymentID)
	return &body, nil
}

func (r *GetPaymentRequest) Validate() error {
	if r.PaymentID == "" {
		return errors.New("paymentId is required")
	}
	return nil
}

type UpdatePaymentStatusRequest struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

func NewUpdatePaymentStatusRequestFromContext(ctx echo.Context) (*UpdatePaymentStatusRequest, error) {
	var body UpdatePaymentStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.PaymentID = strings.TrimSpace(body.PaymentID)
	body.Status = strings.TrimSpace(body.Status)
	return &body, nil
}

func (r *UpdatePaymentStatusRequest) Validate() error {
	if r.PaymentID == "" {
		return errors.New("paymentId is required")
	}
	if r.Status == "" {
		return errors.New("status is required")
	}
	return nil
}

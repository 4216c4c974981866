package types

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

type CreateUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

func NewCreateUserRequestFromContext(ctx echo.Context) (*CreateUserRequest, error) {
	var body CreateUserRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Company = strings.TrimSpace(body.Company)
	return &body, nil
}

func (r *CreateUserRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return errors.New("a valid email is required")
	}
	return nil
}

type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func NewCreateContactRequestFromContext(ctx echo.Context) (*CreateContactRequest, error) {
	var body CreateContactRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Subject = strings.TrimSpace(body.Subject)
	body.Message = strings.TrimSpace(body.Message)
	return &body, nil
}

func (r *CreateContactRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return errors.New("a valid email is required")
	}
	if r.Message == "" {
		return errors.New("message is required")
	}
	return nil
}

type PlanRequest struct {
	Name     string      `json:"name"`
	Features []string    `json:"features"`
	Price    json.Number `json:"price"`
	Currency string      `json:"currency"`
}

func NewPlanRequestFromContext(ctx echo.Context) (*PlanRequest, error) {
	var body PlanRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Currency = strings.ToUpper(strings.TrimSpace(body.Currency))
	if body.Currency == "" {
		body.Currency = "USD"
	}
	return &body, nil
}

func (r *PlanRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Price.String()) == "" {
		return errors.New("price is required")
	}
	if len(r.Currency) != 3 {
		return errors.New("currency must be 3 letters")
	}
	return nil
}

type CreateReceiptRequest struct {
	PaymentID string `json:"paymentId"`
}

func NewCreateReceiptRequestFromContext(ctx echo.Context) (*CreateReceiptRequest, error) {
	var body CreateReceiptRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.PaymentID = strings.TrimSpace(body.PaymentID)
	return &body, nil
}

func (r *CreateReceiptRequest) Validate() error {
	if r.PaymentID == "" {
		return errors.New("paymentId is required")
	}
	return nil
}

package types

import "encoding/json"

// Payment is the API view of a ledger record. Field names match the
// frontend contract; create_time keeps its snake-case spelling.
type Payment struct {
	PaymentID       string   `json:"paymentId"`
	OrderID         string   `json:"orderId"`
	TransactionID   string   `json:"transactionId"`
	UserID          string   `json:"userId"`
	UserName        string   `json:"userName"`
	Status          string   `json:"status"`
	PayerEmail      string   `json:"payerEmail"`
	PayerName       string   `json:"payerName"`
	PackageName     string   `json:"packageName"`
	PackageFeatures []string `json:"packageFeatures"`
	Amount          float64  `json:"amount"`
	Currency        string   `json:"currency"`
	CreateTime      string   `json:"create_time"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

type PaymentStats struct {
	TotalPayments    int64   `json:"totalPayments"`
	TotalAmount      float64 `json:"totalAmount"`
	CapturedPayments int64   `json:"capturedPayments"`
	CapturedAmount   float64 `json:"capturedAmount"`
	CreatedPayments  int64   `json:"createdPayments"`
	FailedPayments   int64   `json:"failedPayments"`
}

type User struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	CreatedAt string `json:"createdAt"`
}

type Contact struct {
	ContactID string `json:"contactId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

type Plan struct {
	PlanID   string   `json:"planId"`
	Name     string   `json:"name"`
	Features []string `json:"features"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
}

type Receipt struct {
	ReceiptID   string  `json:"receiptId"`
	PaymentID   string  `json:"paymentId"`
	UserID      string  `json:"userId"`
	PackageName string  `json:"packageName"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	IssuedAt    string  `json:"issuedAt"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// CaptureErrorResponse carries the provider's raw detail payload alongside
// the user-actionable message when a capture is declined.
type CaptureErrorResponse struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

type CreateOrderResponse struct {
	Payment     *Payment `json:"payment"`
	ApproveLink string   `json:"approveLink"`
}

type CaptureOrderResponse struct {
	Message string   `json:"message"`
	Payment *Payment `json:"payment"`
}

type PaymentEnvelopeResponse struct {
	Payment *Payment `json:"payment"`
}

// SuccessResponse is the admin/CRUD envelope: {success, data}.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// SuccessListResponse is the list variant: {success, data, total}.
type SuccessListResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int         `json:"total"`
}

type SuccessMessageResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type AdminErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

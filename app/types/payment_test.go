package types

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newRequestContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCreateOrderRequestValidate(t *testing.T) {
	req, err := NewCreateOrderRequestFromContext(newRequestContext(`{"amount":49.99,"packageName":" Pro ","userId":"user-1"}`))
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if req.PackageName != "Pro" {
		t.Fatalf("expected trimmed package name, got %q", req.PackageName)
	}
	if req.Amount.String() != "49.99" {
		t.Fatalf("unexpected amount: %s", req.Amount.String())
	}

	req, _ = NewCreateOrderRequestFromContext(newRequestContext(`{"packageName":"Pro","userId":"user-1"}`))
	if err := req.Validate(); err == nil {
		t.Fatal("expected missing amount to fail validation")
	}
}

func TestCaptureOrderRequestAcceptsBothSpellings(t *testing.T) {
	req, err := NewCaptureOrderRequestFromContext(newRequestContext(`{"orderID":"ORDER-1"}`))
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if req.OrderID() != "ORDER-1" {
		t.Fatalf("unexpected order id: %s", req.OrderID())
	}

	req, _ = NewCaptureOrderRequestFromContext(newRequestContext(`{"orderId":"ORDER-2"}`))
	if req.OrderID() != "ORDER-2" {
		t.Fatalf("unexpected order id: %s", req.OrderID())
	}

	req, _ = NewCaptureOrderRequestFromContext(newRequestContext(`{}`))
	if err := req.Validate(); err == nil {
		t.Fatal("expected missing order id to fail validation")
	}
}

func TestUpdatePaymentStatusRequestValidate(t *testing.T) {
	req, err := NewUpdatePaymentStatusRequestFromContext(newRequestContext(`{"paymentId":"pay-1","status":" CAPTURED "}`))
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if req.Status != "CAPTURED" {
		t.Fatalf("expected trimmed status, got %q", req.Status)
	}

	req, _ = NewUpdatePaymentStatusRequestFromContext(newRequestContext(`{"paymentId":"pay-1"}`))
	if err := req.Validate(); err == nil {
		t.Fatal("expected missing status to fail validation")
	}
}

package gateway

import (
	"encoding/json"
	"fmt"
)

// AuthError means the provider rejected the configured client credentials
// during the token exchange.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("paypal token exchange failed: status=%d body=%s", e.StatusCode, e.Body)
}

// GatewayError covers any other non-success provider response.
type GatewayError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("paypal request failed: op=%s status=%d body=%s", e.Op, e.StatusCode, e.Body)
}

// CaptureDeclinedError is the provider's unprocessable-entity response to a
// capture, typically an order the payer has not approved yet. Detail holds
// the provider's raw error payload for the caller to surface.
type CaptureDeclinedError struct {
	Detail json.RawMessage
}

func (e *CaptureDeclinedError) Error() string {
	return "order cannot be captured before payer approval"
}

//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

const defaultBackendHTTPBase = "http://localhost:5000"

func backendHTTPBase() string {
	if value := os.Getenv("BACKEND_HTTP_URL"); value != "" {
		return value
	}
	return defaultBackendHTTPBase
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient() *httpClient {
	return &httpClient{
		baseURL: backendHTTPBase(),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) doJSON(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal failed: %v", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response failed: %v", err)
	}
	return resp, buf.Bytes()
}

func decodeJSON(t *testing.T, data []byte, out any) {
	t.Helper()
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal failed: %v body=%s", err, string(data))
	}
}

func TestHealth(t *testing.T) {
	client := newHTTPClient()
	resp, body := client.doJSON(t, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
	}
}

func TestUserLifecycle(t *testing.T) {
	client := newHTTPClient()
	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())

	resp, body := client.doJSON(t, http.MethodPost, "/user", map[string]string{
		"name":    "E2E User",
		"email":   email,
		"company": "EngageSphere QA",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", resp.StatusCode, string(body))
	}

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			UserID string `json:"userId"`
			Email  string `json:"email"`
		} `json:"data"`
	}
	decodeJSON(t, body, &created)
	if !created.Success || created.Data.UserID == "" {
		t.Fatalf("unexpected create payload: %s", string(body))
	}

	// Duplicate email must conflict.
	resp, body = client.doJSON(t, http.MethodPost, "/user", map[string]string{
		"name":  "E2E User",
		"email": email,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", resp.StatusCode, string(body))
	}

	resp, body = client.doJSON(t, http.MethodGet, "/user/"+created.Data.UserID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
	}
}

func TestContactSubmission(t *testing.T) {
	client := newHTTPClient()

	resp, body := client.doJSON(t, http.MethodPost, "/contact", map[string]string{
		"name":    "E2E Contact",
		"email":   "contact@example.com",
		"subject": "Hello",
		"message": "End to end contact message",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", resp.StatusCode, string(body))
	}

	resp, body = client.doJSON(t, http.MethodGet, "/contact/all", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
	}
}

func TestPlanLifecycle(t *testing.T) {
	client := newHTTPClient()
	name := fmt.Sprintf("e2e-plan-%d", time.Now().UnixNano())

	resp, body := client.doJSON(t, http.MethodPost, "/plan", map[string]any{
		"name":     name,
		"features": []string{"analytics", "priority support"},
		"price":    "49.99",
		"currency": "usd",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", resp.StatusCode, string(body))
	}

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			PlanID   string  `json:"planId"`
			Currency string  `json:"currency"`
			Price    float64 `json:"price"`
		} `json:"data"`
	}
	decodeJSON(t, body, &created)
	if created.Data.Currency != "USD" {
		t.Fatalf("expected normalized currency, got %s", created.Data.Currency)
	}

	resp, body = client.doJSON(t, http.MethodPut, "/plan/"+created.Data.PlanID, map[string]any{
		"name":     name,
		"features": []string{"analytics"},
		"price":    "59.99",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
	}

	resp, body = client.doJSON(t, http.MethodGet, "/plan/"+created.Data.PlanID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
	}
}

func TestPaymentValidationAndAdminSurface(t *testing.T) {
	client := newHTTPClient()

	// Capture without an order id fails before any provider call.
	resp, body := client.doJSON(t, http.MethodPost, "/payment/capture", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", resp.StatusCode, string(body))
	}

	resp, body = client.doJSON(t, http.MethodPost, "/payment/create", map[string]any{
		"amount":      "10.00",
		"packageName": "Pro",
		"userId":      "e2e-unknown-user",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown user, got %d body=%s", resp.StatusCode, string(body))
	}

	resp, body = client.doJSON(t, http.MethodGet, "/payment/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
	}

	var stats struct {
		Success bool `json:"success"`
		Data    struct {
			TotalPayments int64 `json:"totalPayments"`
		} `json:"data"`
	}
	decodeJSON(t, body, &stats)
	if !stats.Success {
		t.Fatalf("unexpected stats payload: %s", string(body))
	}

	resp, body = client.doJSON(t, http.MethodGet, "/payment/all", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
	}

	var list struct {
		Success bool `json:"success"`
		Data    []struct {
			CreatedAt string `json:"createdAt"`
		} `json:"data"`
	}
	decodeJSON(t, body, &list)
	for i := 1; i < len(list.Data); i++ {
		prev, err := time.Parse(time.RFC3339, list.Data[i-1].CreatedAt)
		if err != nil {
			t.Fatalf("parse createdAt failed: %v", err)
		}
		cur, err := time.Parse(time.RFC3339, list.Data[i].CreatedAt)
		if err != nil {
			t.Fatalf("parse createdAt failed: %v", err)
		}
		if cur.After(prev) {
			t.Fatalf("payments not newest-first at position %d", i)
		}
	}
}

// Package gateway integrates with the PayPal checkout API: a
// client-credentials token exchange followed by order create and capture
// calls. Tokens are fetched fresh for every operation; nothing is cached
// or retried.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	ClientID     string
	ClientSecret string
	APIBase      string
	BrandName    string
	ReturnURL    string
	CancelURL    string
	HTTPTimeout  time.Duration
}

type PayPalClient struct {
	cfg    Config
	client *http.Client
}

func NewPayPalClient(cfg Config) *PayPalClient {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cfg.APIBase = strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")

	return &PayPalClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// OrderResult is the remote side of an order creation: the gateway's order
// id and the hyperlink the payer must visit to approve the order.
type OrderResult struct {
	OrderID     string
	ApproveLink string
}

// CaptureResult carries payer identity and the first capture transaction of
// a captured order.
type CaptureResult struct {
	OrderID        string
	TransactionID  string
	Status         string
	PayerEmail     string
	PayerGivenName string
	PayerSurname   string
	CreateTime     time.Time
}

func (c *PayPalClient) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, description, customID string) (*OrderResult, error) {
	token, err := c.fetchAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": strings.ToUpper(currency),
					"value":         amount.StringFixed(2),
				},
				"description": description,
				"custom_id":   customID,
			},
		},
		"application_context": map[string]string{
			"brand_name":  c.cfg.BrandName,
			"user_action": "PAY_NOW",
			"return_url":  c.cfg.ReturnURL,
			"cancel_url":  c.cfg.CancelURL,
		},
	}

	body, err := c.postJSON(ctx, "/v2/checkout/orders", token, payload)
	if err != nil {
		return nil, err
	}

	var order struct {
		ID    string `json:"id"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, err
	}

	result := &OrderResult{OrderID: strings.TrimSpace(order.ID)}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			result.ApproveLink = link.Href
			break
		}
	}

	return result, nil
}

func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	token, err := c.fetchAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	path := "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"
	body, err := c.postJSON(ctx, path, token, map[string]interface{}{})
	if err != nil {
		return nil, err
	}

	var capture struct {
		ID    string `json:"id"`
		Payer struct {
			EmailAddress string `json:"email_address"`
			Name         struct {
				GivenName string `json:"given_name"`
				Surname   string `json:"surname"`
			} `json:"name"`
		} `json:"payer"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					ID         string `json:"id"`
					Status     string `json:"status"`
					CreateTime string `json:"create_time"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(body, &capture); err != nil {
		return nil, err
	}

	result := &CaptureResult{
		OrderID:        strings.TrimSpace(capture.ID),
		PayerEmail:     capture.Payer.EmailAddress,
		PayerGivenName: capture.Payer.Name.GivenName,
		PayerSurname:   capture.Payer.Name.Surname,
	}

	if len(capture.PurchaseUnits) == 0 || len(capture.PurchaseUnits[0].Payments.Captures) == 0 {
		return nil, &GatewayError{Op: "capture order", StatusCode: http.StatusOK, Body: "capture response contains no transaction"}
	}

	txn := capture.PurchaseUnits[0].Payments.Captures[0]
	result.TransactionID = txn.ID
	result.Status = txn.Status
	result.CreateTime = parseGatewayTime(txn.CreateTime)

	return result, nil
}

func (c *PayPalClient) fetchAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBase+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return "", &AuthError{StatusCode: resp.StatusCode, Body: "token response contains no access_token"}
	}

	return payload.AccessToken, nil
}

func (c *PayPalClient) postJSON(ctx context.Context, path, token string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBase+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, &CaptureDeclinedError{Detail: json.RawMessage(body)}
	}
	if resp.StatusCode >= 400 {
		return nil, &GatewayError{Op: fmt.Sprintf("POST %s", path), StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func parseGatewayTime(raw string) time.Time {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Now().UTC()
	}
	return parsed.UTC()
}

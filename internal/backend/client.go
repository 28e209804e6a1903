package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new storefront backend API client
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// OrderLineItem is a single cart line in an order request
type OrderLineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the payload for POST /orders
type OrderRequest struct {
	Items           []OrderLineItem `json:"items"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Notes           string          `json:"notes"`
}

// Order is the backend-created purchase record. Only the id is required by
// the checkout flow; the rest is surfaced when the backend sends it.
type Order struct {
	ID     string  `json:"id"`
	Status string  `json:"status,omitempty"`
	Total  float64 `json:"total,omitempty"`
}

// CardDetails carries raw card data for credit card payments
type CardDetails struct {
	Number     string `json:"number"`
	ExpMonth   int    `json:"expMonth"`
	ExpYear    int    `json:"expYear"`
	CVC        string `json:"cvc"`
	HolderName string `json:"holderName"`
}

// PaymentRequest is the payload for POST /payment/process
type PaymentRequest struct {
	OrderID        string       `json:"orderId"`
	PaymentMethod  string       `json:"paymentMethod"`
	Amount         float64      `json:"amount"`
	Currency       string       `json:"currency"`
	CardDetails    *CardDetails `json:"cardDetails,omitempty"`
	BillingAddress string       `json:"billingAddress"`
}

// APIError is a non-2xx response from the backend, carrying the
// server-provided message when one was present in the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend API error: status %d", e.StatusCode)
}

// CreateOrder submits an order. The backend wraps the created order in a
// data envelope: {"data": {...order...}}.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	body, err := c.post(ctx, "/orders", req)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data Order `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order response: %w", err)
	}

	if envelope.Data.ID == "" {
		return nil, fmt.Errorf("order response missing id")
	}

	return &envelope.Data, nil
}

// ProcessPayment submits a payment for an existing order. Only
// success/failure is consumed from the response.
func (c *Client) ProcessPayment(ctx context.Context, req PaymentRequest) error {
	_, err := c.post(ctx, "/payment/process", req)
	return err
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	url := c.baseURL + path

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Backend request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(body),
		}
	}

	return body, nil
}

// serverMessage extracts the error message the backend put in a failure
// body, trying the common field names.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

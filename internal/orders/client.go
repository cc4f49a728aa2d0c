package orders

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

	"github.com/trendythreads/storefront/internal/config"
	"github.com/trendythreads/storefront/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the order-creation API
func NewClient(cfg config.CheckoutConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.OrderAPIBaseURL, "/"),
		httpClient: &http.Client{
			// No request timeout of our own; callers rely on the
			// transport's connection limits.
		},
		logger: logger,
	}
}

// CreateOrderRequest is the order-creation payload
type CreateOrderRequest struct {
	FullName    string                 `json:"fullName"`
	Email       string                 `json:"email"`
	Address     string                 `json:"address"`
	PhoneNumber string                 `json:"phoneNumber"`
	District    string                 `json:"district"`
	Product     domain.ProductSnapshot `json:"product"`
	Size        string                 `json:"size"`
	Notes       string                 `json:"notes,omitempty"`
}

// CreateOrderResponse is the order-creation result. Fields beyond the
// success flag and message are ignored by the checkout flow.
type CreateOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OrderID string `json:"orderId,omitempty"`
}

// CreateOrder submits an order. A response that parses is returned
// as-is, whatever its HTTP status; the Success flag is the contract.
// Transport failures and unparseable bodies come back as errors.
func (c *Client) CreateOrder(ctx context.Context, order CreateOrderRequest) (*CreateOrderResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("order API base URL is not configured")
	}

	url := c.baseURL + "/api/orders"

	jsonData, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var orderResp CreateOrderResponse
	if err := json.Unmarshal(body, &orderResp); err != nil {
		return nil, fmt.Errorf("order API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("Order submission completed",
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", orderResp.Success),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &orderResp, nil
}

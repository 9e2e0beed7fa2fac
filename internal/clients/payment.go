package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"frostbar-backend/internal/config"
	"frostbar-backend/internal/logger"
)

// PaymentClient talks to the external payment processor.
type PaymentClient interface {
	Capture(ctx context.Context, req *CaptureRequest) (*CaptureResponse, error)
	Refund(ctx context.Context, paymentID string, amountCents int64) error
}

// CaptureRequest charges a card token for an order total.
type CaptureRequest struct {
	OrderNumber string `json:"order_number"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	CardToken   string `json:"card_token"`
	Description string `json:"description,omitempty"`
}

type CaptureResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

type httpPaymentClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPaymentClient(cfg config.PaymentConfig) PaymentClient {
	return &httpPaymentClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (c *httpPaymentClient) Capture(ctx context.Context, req *CaptureRequest) (*CaptureResponse, error) {
	logger.ExternalServiceCall("payment", "capture", "order_number", req.OrderNumber, "amount_cents", req.AmountCents)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/charges", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.ExternalServiceResult("payment", "capture", err, "order_number", req.OrderNumber)
		return nil, fmt.Errorf("payment capture failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err := fmt.Errorf("payment processor returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("payment", "capture", err, "order_number", req.OrderNumber)
		return nil, err
	}

	var result CaptureResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	logger.ExternalServiceResult("payment", "capture", nil, "order_number", req.OrderNumber, "payment_id", result.PaymentID)
	return &result, nil
}

func (c *httpPaymentClient) Refund(ctx context.Context, paymentID string, amountCents int64) error {
	logger.ExternalServiceCall("payment", "refund", "payment_id", paymentID, "amount_cents", amountCents)

	body, err := json.Marshal(map[string]interface{}{"amount_cents": amountCents})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/charges/%s/refund", c.baseURL, paymentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.ExternalServiceResult("payment", "refund", err, "payment_id", paymentID)
		return fmt.Errorf("payment refund failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("payment processor returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("payment", "refund", err, "payment_id", paymentID)
		return err
	}

	logger.ExternalServiceResult("payment", "refund", nil, "payment_id", paymentID)
	return nil
}

func (c *httpPaymentClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

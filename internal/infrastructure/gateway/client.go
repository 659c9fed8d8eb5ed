package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/pkg/logger"
)

// PaymentLink is a hosted checkout page created for a wallet recharge
type PaymentLink struct {
	ID       string
	ShortURL string
}

// Client creates payment links against the gateway's REST API using
// basic auth. Amounts are sent in the smallest currency unit.
type Client struct {
	baseURL     string
	keyID       string
	keySecret   string
	callbackURL string
	httpClient  *http.Client
}

func NewClient(baseURL, keyID, keySecret, callbackURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:     baseURL,
		keyID:       keyID,
		keySecret:   keySecret,
		callbackURL: callbackURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// CreatePaymentLink creates a hosted payment page for the given amount.
// The callback URL carries the ledger transaction id so the gateway's
// redirect can be matched back to the pending credit.
func (c *Client) CreatePaymentLink(ctx context.Context, amount decimal.Decimal, transactionID, customerName, customerEmail, customerContact string) (*PaymentLink, error) {
	callback := fmt.Sprintf("%s?transaction_id=%s", c.callbackURL, url.QueryEscape(transactionID))

	payload := map[string]interface{}{
		"amount":       amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency":     "INR",
		"description":  "Wallet recharge",
		"reference_id": transactionID,
		"customer": map[string]string{
			"name":    customerName,
			"email":   customerEmail,
			"contact": customerContact,
		},
		"callback_url":    callback,
		"callback_method": "get",
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_links", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn(ctx, "gateway request failed", zap.Error(err))
		return nil, domainerrors.ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.ErrGatewayUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		logger.Warn(ctx, "gateway returned error",
			zap.Int("status", resp.StatusCode))
		return nil, domainerrors.ErrGatewayUnavailable
	}

	var link struct {
		ID       string `json:"id"`
		ShortURL string `json:"short_url"`
	}
	if err := json.Unmarshal(body, &link); err != nil || link.ShortURL == "" {
		return nil, domainerrors.ErrGatewayUnavailable
	}
	return &PaymentLink{ID: link.ID, ShortURL: link.ShortURL}, nil
}

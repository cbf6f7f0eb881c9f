package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/payment"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httpclient"
)

// DefaultBaseURL is Razorpay's API root.
const DefaultBaseURL = "https://api.razorpay.com"

// Provider creates orders through the Razorpay Orders API.
type Provider struct {
	baseURL   string
	keyID     string
	keySecret string
	http      httpclient.Doer
}

// NewProvider creates a Razorpay provider authenticating with the key pair.
func NewProvider(baseURL, keyID, keySecret string, doer httpclient.Doer) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		http:      doer,
	}
}

// Name returns "razorpay".
func (p *Provider) Name() string {
	return "razorpay"
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder calls POST /v1/orders. Gateway rejections come back as
// *httpclient.APIError with Razorpay's error code and description.
func (p *Provider) CreateOrder(ctx context.Context, input *payment.OrderInput) (*payment.Order, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   input.Amount,
		Currency: input.Currency,
		Receipt:  input.Receipt,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	req.SetBasicAuth(p.keyID, p.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpclient.ParseResponseError(resp, "razorpay")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}

	var order payment.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	order.Raw = raw
	return &order, nil
}

package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/payment"
)

// Provider creates orders locally without a payment gateway. It is used in
// development when no gateway credentials are configured.
type Provider struct{}

// NewProvider creates a mock payment provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns "mock".
func (p *Provider) Name() string {
	return "mock"
}

// CreateOrder returns an order shaped like a gateway order in "created" state.
func (p *Provider) CreateOrder(_ context.Context, input *payment.OrderInput) (*payment.Order, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	id := "order_mock" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
	notes := input.Notes
	if notes == nil {
		notes = map[string]string{}
	}

	raw, err := json.Marshal(map[string]any{
		"id":          id,
		"entity":      "order",
		"amount":      input.Amount,
		"amount_paid": 0,
		"amount_due":  input.Amount,
		"currency":    input.Currency,
		"receipt":     input.Receipt,
		"status":      "created",
		"attempts":    0,
		"notes":       notes,
		"created_at":  time.Now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode mock order: %w", err)
	}

	return &payment.Order{
		ID:       id,
		Amount:   input.Amount,
		Currency: input.Currency,
		Receipt:  input.Receipt,
		Status:   "created",
		Raw:      raw,
	}, nil
}

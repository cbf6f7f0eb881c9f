package payment

import (
	"context"
	"encoding/json"
)

// OrderInput is a request to open a payment order. Amount is in the
// currency's minor unit (paise for INR).
type OrderInput struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is a provider-side payment order. Raw holds the provider's JSON
// object unchanged so it can be handed to the checkout widget as-is.
type Order struct {
	ID       string          `json:"id"`
	Amount   int64           `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt"`
	Status   string          `json:"status"`
	Raw      json.RawMessage `json:"-"`
}

// Provider creates payment orders.
type Provider interface {
	// Name returns the provider name, e.g. "razorpay".
	Name() string

	// CreateOrder opens an order the shopper can pay against.
	CreateOrder(ctx context.Context, input *OrderInput) (*Order, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/event"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/payment"
	apperrors "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/errors"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httpclient"
)

const (
	// maxReceiptLen is the longest receipt the payment gateway accepts.
	maxReceiptLen   = 40
	defaultCurrency = "INR"

	msgPaymentUnavailable = "Payment gateway is temporarily unavailable"
)

// CreateOrderInput is the storefront's request to open a payment order.
type CreateOrderInput struct {
	Amount   int64             `json:"amount" validate:"required,gt=0"`
	Currency string            `json:"currency" validate:"omitempty,currency"`
	Receipt  string            `json:"receipt" validate:"max=40"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// OrderEvents receives notifications about created orders.
type OrderEvents interface {
	PublishOrderCreated(ctx context.Context, data event.OrderCreatedData) error
}

// OrderService opens payment orders with the configured provider.
type OrderService struct {
	provider payment.Provider
	events   OrderEvents
	logger   *slog.Logger
}

// NewOrderService creates an order service.
func NewOrderService(provider payment.Provider, events OrderEvents, logger *slog.Logger) *OrderService {
	return &OrderService{provider: provider, events: events, logger: logger}
}

// CreateOrder opens an order for input.Amount minor units. Currency defaults
// to INR and a receipt is generated when the caller leaves it empty.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*payment.Order, error) {
	if input.Amount <= 0 {
		return nil, apperrors.InvalidInput("amount must be greater than zero")
	}
	if input.Currency == "" {
		input.Currency = defaultCurrency
	}
	if input.Receipt == "" {
		input.Receipt = "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if len(input.Receipt) > maxReceiptLen {
		return nil, apperrors.InvalidInput(fmt.Sprintf("receipt must be at most %d characters", maxReceiptLen))
	}

	order, err := s.provider.CreateOrder(ctx, &payment.OrderInput{
		Amount:   input.Amount,
		Currency: input.Currency,
		Receipt:  input.Receipt,
		Notes:    input.Notes,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "payment order creation failed",
			slog.String("provider", s.provider.Name()),
			slog.Int64("amount", input.Amount),
			slog.String("currency", input.Currency),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.PaymentFailed(paymentMessage(err), fmt.Errorf("create %s order: %w", s.provider.Name(), err))
	}

	s.logger.InfoContext(ctx, "payment order created",
		slog.String("provider", s.provider.Name()),
		slog.String("order_id", order.ID),
		slog.Int64("amount", order.Amount),
	)

	if err := s.events.PublishOrderCreated(ctx, event.OrderCreatedData{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order.created event", slog.String("error", err.Error()))
	}

	return order, nil
}

// paymentMessage picks the text shown to the shopper for a failed order: the
// provider's own description when it sent one.
func paymentMessage(err error) string {
	if errors.Is(err, httpclient.ErrCircuitOpen) {
		return msgPaymentUnavailable
	}
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

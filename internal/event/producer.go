package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/domain"
	pkgkafka "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/kafka"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/logger"
)

// Kafka topics for storefront events.
const (
	TopicWishlist = "revorbit.storefront.wishlist"
	TopicOrders   = "revorbit.storefront.orders"
)

// Event types.
const (
	TypeWishlistSaved      = "wishlist.saved"
	TypeWishlistReconciled = "wishlist.reconciled"
	TypeOrderCreated       = "order.created"
)

// Source is stamped on every event published by this service.
const Source = "storefront"

// WishlistSavedData is the payload of wishlist.saved.
type WishlistSavedData struct {
	UserID    string `json:"user_id,omitempty"`
	DeviceID  string `json:"device_id,omitempty"`
	ProductID string `json:"product_id"`
	Local     bool   `json:"local"`
}

// WishlistReconciledData is the payload of wishlist.reconciled.
type WishlistReconciledData struct {
	UserID   string `json:"user_id"`
	DeviceID string `json:"device_id"`
	Merged   int    `json:"merged"`
}

// OrderCreatedData is the payload of order.created.
type OrderCreatedData struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Publisher is the subset of *pkgkafka.Producer used here.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes storefront domain events.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a producer. A nil publisher makes every method a no-op,
// which is how the service runs with Kafka disabled.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// PublishWishlistSaved publishes wishlist.saved keyed by user, or by device
// for local saves.
func (p *Producer) PublishWishlistSaved(ctx context.Context, deviceID string, product domain.Product) error {
	key := product.UserID
	if key == "" {
		key = deviceID
	}
	return p.publish(ctx, TopicWishlist, TypeWishlistSaved, key, WishlistSavedData{
		UserID:    product.UserID,
		DeviceID:  deviceID,
		ProductID: product.ID.String(),
		Local:     !product.Authenticated(),
	})
}

// PublishWishlistReconciled publishes wishlist.reconciled keyed by user.
func (p *Producer) PublishWishlistReconciled(ctx context.Context, deviceID, userID string, merged int) error {
	return p.publish(ctx, TopicWishlist, TypeWishlistReconciled, userID, WishlistReconciledData{
		UserID:   userID,
		DeviceID: deviceID,
		Merged:   merged,
	})
}

// PublishOrderCreated publishes order.created keyed by order id.
func (p *Producer) PublishOrderCreated(ctx context.Context, data OrderCreatedData) error {
	return p.publish(ctx, TopicOrders, TypeOrderCreated, data.OrderID, data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, key string, data any) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	ev, err := pkgkafka.NewEvent(eventType, key, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	ev.CorrelationID = logger.CorrelationIDFromContext(ctx)

	if err := p.kafka.Publish(ctx, topic, ev); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("event_type", eventType),
		slog.String("key", key),
	)
	return nil
}

package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/domain"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/event"
)

// --- Mocks shared by the service tests ---

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Upsert(ctx context.Context, entry domain.WishlistEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockWishlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WishlistEntry), args.Error(1)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishWishlistSaved(ctx context.Context, deviceID string, product domain.Product) error {
	return m.Called(ctx, deviceID, product).Error(0)
}

func (m *mockEvents) PublishWishlistReconciled(ctx context.Context, deviceID, userID string, merged int) error {
	return m.Called(ctx, deviceID, userID, merged).Error(0)
}

func (m *mockEvents) PublishOrderCreated(ctx context.Context, data event.OrderCreatedData) error {
	return m.Called(ctx, data).Error(0)
}

// quietEvents accepts every publish.
func quietEvents() *mockEvents {
	m := new(mockEvents)
	m.On("PublishWishlistSaved", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("PublishWishlistReconciled", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(nil).Maybe()
	return m
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

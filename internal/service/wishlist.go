package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/domain"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/kv"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/repository"
	apperrors "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/errors"
)

// WishlistKey is the device-store key holding the local wishlist.
const WishlistKey = "wishlist"

const (
	msgAlreadySaved   = "Already saved"
	msgSaveFailed     = "Could not save item to wishlist"
	msgLoadFailed     = "Could not load wishlist"
	msgReconcileStuck = "Could not move saved items to your account"
)

// WishlistEvents receives notifications about wishlist changes.
type WishlistEvents interface {
	PublishWishlistSaved(ctx context.Context, deviceID string, product domain.Product) error
	PublishWishlistReconciled(ctx context.Context, deviceID, userID string, merged int) error
}

// WishlistService saves products for later. Signed-in users are written to
// the remote store; anonymous shoppers get a per-device list in the device
// store. The two are only merged by an explicit Reconcile.
type WishlistService struct {
	remote repository.WishlistRepository
	device kv.Store
	events WishlistEvents
	logger *slog.Logger
}

// NewWishlistService creates a wishlist service.
func NewWishlistService(remote repository.WishlistRepository, device kv.Store, events WishlistEvents, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		remote: remote,
		device: device,
		events: events,
		logger: logger,
	}
}

// SaveForLater records product for the current shopper.
//
// Without product.UserID the product snapshot is appended to the device's
// local list; saving the same product id twice fails with ALREADY_SAVED and
// leaves the list unchanged. With product.UserID the (user, product) pair is
// upserted remotely; repeats succeed silently. Remote failures are reported
// as STORE_FAILURE carrying the store's message when it gave one.
func (s *WishlistService) SaveForLater(ctx context.Context, deviceID string, product domain.Product) error {
	if product.ID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	var err error
	if product.Authenticated() {
		err = s.saveRemote(ctx, product)
	} else {
		err = s.saveLocal(ctx, deviceID, product)
	}
	if err != nil {
		return err
	}

	if err := s.events.PublishWishlistSaved(ctx, deviceID, product); err != nil {
		s.logger.WarnContext(ctx, "failed to publish wishlist.saved event",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func (s *WishlistService) saveRemote(ctx context.Context, product domain.Product) error {
	entry := domain.WishlistEntry{UserID: product.UserID, ProductID: product.ID}
	if err := s.remote.Upsert(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "remote wishlist upsert failed",
			slog.String("user_id", product.UserID),
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
		return storeFailure(err, msgSaveFailed)
	}
	return nil
}

func (s *WishlistService) saveLocal(ctx context.Context, deviceID string, product domain.Product) error {
	if deviceID == "" {
		return apperrors.InvalidInput("device id is required when not signed in")
	}

	items, err := s.ListLocal(ctx, deviceID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == product.ID {
			return apperrors.AlreadySaved(msgAlreadySaved)
		}
	}

	return s.writeLocal(ctx, deviceID, append(items, product))
}

// ListLocal returns the device's saved products in save order. A device
// that never saved anything has an empty list.
func (s *WishlistService) ListLocal(ctx context.Context, deviceID string) ([]domain.Product, error) {
	if deviceID == "" {
		return nil, apperrors.InvalidInput("device id is required")
	}

	raw, ok, err := s.device.Get(ctx, kv.DeviceKey(deviceID, WishlistKey))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("read local wishlist: %w", err))
	}

	items := []domain.Product{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("decode local wishlist: %w", err))
	}
	return items, nil
}

func (s *WishlistService) writeLocal(ctx context.Context, deviceID string, items []domain.Product) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("encode local wishlist: %w", err))
	}
	if err := s.device.Set(ctx, kv.DeviceKey(deviceID, WishlistKey), string(raw)); err != nil {
		return apperrors.Internal(fmt.Errorf("write local wishlist: %w", err))
	}
	return nil
}

// ListRemote returns the signed-in user's remote wishlist.
func (s *WishlistService) ListRemote(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to view your saved items")
	}

	entries, err := s.remote.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeFailure(err, msgLoadFailed)
	}
	return entries, nil
}

// Reconcile moves the device's local list into the user's remote wishlist
// and returns how many products it merged. Every local product is upserted
// before the merged products are removed from the local list; on the first
// failure it stops and the local list stays as it was, so calling it again is
// safe. Products saved locally while the merge runs are kept.
func (s *WishlistService) Reconcile(ctx context.Context, deviceID, userID string) (int, error) {
	if userID == "" {
		return 0, apperrors.Unauthorized("sign in to sync saved items")
	}

	items, err := s.ListLocal(ctx, deviceID)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	for _, item := range items {
		entry := domain.WishlistEntry{UserID: userID, ProductID: item.ID}
		if err := s.remote.Upsert(ctx, entry); err != nil {
			s.logger.ErrorContext(ctx, "wishlist reconcile stopped",
				slog.String("user_id", userID),
				slog.String("product_id", item.ID.String()),
				slog.String("error", err.Error()),
			)
			return 0, storeFailure(err, msgReconcileStuck)
		}
	}

	if err := s.clearMerged(ctx, deviceID, items); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "local wishlist reconciled",
		slog.String("user_id", userID),
		slog.Int("merged", len(items)),
	)
	if err := s.events.PublishWishlistReconciled(ctx, deviceID, userID, len(items)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish wishlist.reconciled event", slog.String("error", err.Error()))
	}
	return len(items), nil
}

// clearMerged removes merged from the device's list, keeping anything saved
// after the list was read.
func (s *WishlistService) clearMerged(ctx context.Context, deviceID string, merged []domain.Product) error {
	current, err := s.ListLocal(ctx, deviceID)
	if err != nil {
		return err
	}

	done := make(map[domain.ProductID]struct{}, len(merged))
	for _, p := range merged {
		done[p.ID] = struct{}{}
	}
	remaining := make([]domain.Product, 0, len(current))
	for _, p := range current {
		if _, ok := done[p.ID]; !ok {
			remaining = append(remaining, p)
		}
	}

	if len(remaining) > 0 {
		return s.writeLocal(ctx, deviceID, remaining)
	}
	if err := s.device.Delete(ctx, kv.DeviceKey(deviceID, WishlistKey)); err != nil {
		return apperrors.Internal(fmt.Errorf("clear local wishlist: %w", err))
	}
	return nil
}

// storeFailure surfaces the remote store's own message when it supplied one.
func storeFailure(err error, fallback string) error {
	msg := fallback
	var se *domain.StoreError
	if errors.As(err, &se) && se.Message != "" {
		msg = se.Message
	}
	return apperrors.StoreFailure(msg, err)
}

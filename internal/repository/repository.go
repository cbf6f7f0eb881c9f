package repository

import (
	"context"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/domain"
)

// WishlistRepository is the remote wishlist store for signed-in users.
// Failures are returned as *domain.StoreError.
type WishlistRepository interface {
	// Upsert records the entry. Saving an existing (user, product) pair is a
	// no-op, not an error.
	Upsert(ctx context.Context, entry domain.WishlistEntry) error

	// ListByUser returns the user's entries, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error)
}

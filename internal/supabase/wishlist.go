package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/domain"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httpclient"
)

const wishlistPath = "/rest/v1/wishlist"

// WishlistStore implements repository.WishlistRepository on the project's
// wishlist table.
type WishlistStore struct {
	client *Client
}

// NewWishlistStore creates a PostgREST-backed wishlist store.
func NewWishlistStore(client *Client) *WishlistStore {
	return &WishlistStore{client: client}
}

type wishlistRow struct {
	UserID    string           `json:"user_id"`
	ProductID domain.ProductID `json:"product_id"`
}

// Upsert inserts the row, ignoring duplicates on (user_id, product_id).
func (s *WishlistStore) Upsert(ctx context.Context, entry domain.WishlistEntry) error {
	query := url.Values{"on_conflict": {"user_id,product_id"}}
	rows := []wishlistRow{{UserID: entry.UserID, ProductID: entry.ProductID}}

	req, err := s.client.newRequest(ctx, http.MethodPost, wishlistPath, query, rows)
	if err != nil {
		return storeError("upsert wishlist", err)
	}
	req.Header.Set("Prefer", "resolution=ignore-duplicates,return=minimal")

	if err := s.client.do(ctx, req, nil); err != nil {
		return storeError("upsert wishlist", err)
	}
	return nil
}

// ListByUser returns the user's rows, newest first.
func (s *WishlistStore) ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	query := url.Values{
		"select":  {"user_id,product_id,created_at"},
		"user_id": {"eq." + userID},
		"order":   {"created_at.desc"},
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, wishlistPath, query, nil)
	if err != nil {
		return nil, storeError("list wishlist", err)
	}

	entries := []domain.WishlistEntry{}
	if err := s.client.do(ctx, req, &entries); err != nil {
		return nil, storeError("list wishlist", err)
	}
	return entries, nil
}

func storeError(op string, err error) error {
	se := &domain.StoreError{Op: op, Err: err}
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) {
		se.Message = apiErr.Message
	}
	return se
}

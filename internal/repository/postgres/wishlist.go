package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/domain"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/database"
)

// WishlistRepository implements repository.WishlistRepository on PostgreSQL.
type WishlistRepository struct {
	db database.DBTX
}

// NewWishlistRepository creates a PostgreSQL-backed wishlist repository.
func NewWishlistRepository(db database.DBTX) *WishlistRepository {
	return &WishlistRepository{db: db}
}

const upsertWishlistSQL = `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`

// Upsert inserts the entry, ignoring an existing (user_id, product_id) row.
func (r *WishlistRepository) Upsert(ctx context.Context, entry domain.WishlistEntry) (err error) {
	ctx, end := database.TraceQuery(ctx, "postgresql", "UpsertWishlist", upsertWishlistSQL)
	defer func() { end(err) }()

	if _, err = r.db.Exec(ctx, upsertWishlistSQL, entry.UserID, string(entry.ProductID)); err != nil {
		return storeError("upsert wishlist", err)
	}
	return nil
}

const listWishlistSQL = `
		SELECT user_id, product_id, created_at
		FROM wishlists
		WHERE user_id = $1
		ORDER BY created_at DESC`

// ListByUser returns every entry saved by userID, newest first.
func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) (entries []domain.WishlistEntry, err error) {
	ctx, end := database.TraceQuery(ctx, "postgresql", "ListWishlist", listWishlistSQL)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, listWishlistSQL, userID)
	if err != nil {
		return nil, storeError("list wishlist", err)
	}
	defer rows.Close()

	entries = []domain.WishlistEntry{}
	for rows.Next() {
		var (
			e         domain.WishlistEntry
			productID string
		)
		if err = rows.Scan(&e.UserID, &productID, &e.CreatedAt); err != nil {
			return nil, storeError("scan wishlist entry", err)
		}
		e.ProductID = domain.ProductID(productID)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("iterate wishlist rows", err)
	}
	return entries, nil
}

// storeError keeps the server's message for PostgreSQL errors so callers can
// surface it.
func storeError(op string, err error) error {
	se := &domain.StoreError{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		se.Message = pgErr.Message
	}
	return se
}

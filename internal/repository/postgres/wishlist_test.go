package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/domain"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/repository"
)

var _ repository.WishlistRepository = (*WishlistRepository)(nil)

func newWishlistTestFixture(t *testing.T) (*WishlistRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewWishlistRepository(mock), mock
}

func TestWishlistRepository_Upsert_Inserted(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)

	mock.ExpectExec("INSERT INTO wishlists").
		WithArgs("user-1", "7").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Upsert(context.Background(), domain.WishlistEntry{UserID: "user-1", ProductID: "7"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Upsert_DuplicateIsNoop(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)

	mock.ExpectExec("ON CONFLICT \\(user_id, product_id\\) DO NOTHING").
		WithArgs("user-1", "7").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := repo.Upsert(context.Background(), domain.WishlistEntry{UserID: "user-1", ProductID: "7"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Upsert_PgErrorKeepsMessage(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)

	mock.ExpectExec("INSERT INTO wishlists").
		WithArgs("user-1", "999").
		WillReturnError(&pgconn.PgError{
			Code:    "23503",
			Message: `insert or update on table "wishlists" violates foreign key constraint`,
		})

	err := repo.Upsert(context.Background(), domain.WishlistEntry{UserID: "user-1", ProductID: "999"})
	require.Error(t, err)

	var se *domain.StoreError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Message, "violates foreign key constraint")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Upsert_ConnectionErrorHasNoMessage(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)

	mock.ExpectExec("INSERT INTO wishlists").
		WithArgs("user-1", "7").
		WillReturnError(errors.New("connection refused"))

	err := repo.Upsert(context.Background(), domain.WishlistEntry{UserID: "user-1", ProductID: "7"})
	var se *domain.StoreError
	require.True(t, errors.As(err, &se))
	assert.Empty(t, se.Message)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWishlistRepository_ListByUser(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT user_id, product_id, created_at FROM wishlists").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "product_id", "created_at"}).
			AddRow("user-1", "9", now).
			AddRow("user-1", "7", now.Add(-time.Hour)))

	entries, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ProductID("9"), entries[0].ProductID)
	assert.Equal(t, now, entries[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_ListByUser_Empty(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)

	mock.ExpectQuery("SELECT user_id, product_id, created_at FROM wishlists").
		WithArgs("user-2").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "product_id", "created_at"}))

	entries, err := repo.ListByUser(context.Background(), "user-2")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestWishlistRepository_ListByUser_QueryError(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)

	mock.ExpectQuery("SELECT user_id, product_id, created_at FROM wishlists").
		WithArgs("user-1").
		WillReturnError(errors.New("timeout"))

	_, err := repo.ListByUser(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list wishlist")
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrUnauthorized,
		ErrInternal, ErrPaymentFailed, ErrStoreFailure,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j])
		}
	}
}

func TestAppError_ErrorString(t *testing.T) {
	withCause := &AppError{Code: "INTERNAL_ERROR", Message: "broken", Err: fmt.Errorf("db down")}
	assert.Equal(t, "INTERNAL_ERROR: broken: db down", withCause.Error())

	plain := &AppError{Code: "NOT_FOUND", Message: "missing"}
	assert.Equal(t, "NOT_FOUND: missing", plain.Error())
}

func TestAlreadySaved(t *testing.T) {
	err := AlreadySaved("Already saved")

	assert.Equal(t, "ALREADY_SAVED", err.Code)
	assert.Equal(t, "Already saved", err.Message)
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestStoreFailure_WithCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := StoreFailure("row level security violation", cause)

	assert.Equal(t, "STORE_FAILURE", err.Code)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.True(t, errors.Is(err, ErrStoreFailure))
	assert.True(t, errors.Is(err, cause))
}

func TestStoreFailure_WithoutCause(t *testing.T) {
	err := StoreFailure("Could not save item", nil)

	require.NotNil(t, err.Err)
	assert.True(t, errors.Is(err, ErrStoreFailure))
}

func TestPaymentFailed_KeepsCause(t *testing.T) {
	cause := errors.New("The api key provided is invalid")
	err := PaymentFailed("The api key provided is invalid", cause)

	assert.Equal(t, "PAYMENT_FAILED", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.True(t, errors.Is(err, ErrPaymentFailed))
	assert.True(t, errors.Is(err, cause))
}

func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("redis: connection refused")
	err := Internal(cause)

	assert.Equal(t, "INTERNAL_ERROR", err.Code)
	assert.NotContains(t, err.Message, "redis")
	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, cause))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", InvalidInput("bad"), http.StatusBadRequest},
		{"wrapped app error", fmt.Errorf("ctx: %w", Unauthorized("nope")), http.StatusUnauthorized},
		{"not found sentinel", fmt.Errorf("x: %w", ErrNotFound), http.StatusNotFound},
		{"already exists sentinel", ErrAlreadyExists, http.StatusConflict},
		{"payment error", PaymentFailed("declined", nil), http.StatusInternalServerError},
		{"store sentinel", ErrStoreFailure, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

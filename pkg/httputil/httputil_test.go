package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/errors"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/logger"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/validator"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"status": "saved"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "saved")
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/wishlist", nil)

	WriteError(rec, req, apperrors.AlreadySaved("Already saved"), nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_SAVED", resp.Error.Code)
	assert.Equal(t, "Already saved", resp.Error.Message)
}

func TestWriteError_WrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/wishlist", nil)

	WriteError(rec, req, fmt.Errorf("lookup: %w", apperrors.ErrNotFound), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)
}

func TestWriteError_InternalIsLoggedAndHidden(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := logger.WithCorrelationID(context.Background(), "corr-1")
	req := httptest.NewRequest(http.MethodGet, "/api/banners", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	WriteError(rec, req, errors.New("pq: password authentication failed"), l)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Equal(t, "corr-1", resp.Error.RequestID)
	assert.NotContains(t, resp.Error.Message, "password")
	assert.Contains(t, buf.String(), "password authentication failed")
}

func TestWriteValidationError(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}
	err := validator.Validate(payload{})

	rec := httptest.NewRecorder()
	WriteValidationError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "is required", resp.Error.Fields["name"])
}

func TestWriteValidationError_Plain(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, errors.New("decode request body: unexpected EOF"))

	resp := decode(t, rec)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/payment"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httpclient"
)

var _ payment.Provider = (*Provider)(nil)

func newTestProvider(t *testing.T, h http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewProvider(server.URL, "rzp_test_key", "secret", httpclient.New(httpclient.Config{Timeout: 5 * time.Second}))
}

func TestCreateOrder_Success(t *testing.T) {
	const orderJSON = `{"id":"order_Q1w2e3r4t5y6u7","entity":"order","amount":50000,"amount_paid":0,"amount_due":50000,"currency":"INR","receipt":"rcpt_1","status":"created","attempts":0,"notes":[],"created_at":1760000000}`

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)

		var body createOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(50000), body.Amount)
		assert.Equal(t, "INR", body.Currency)
		assert.Equal(t, "rcpt_1", body.Receipt)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(orderJSON))
	})

	order, err := p.CreateOrder(context.Background(), &payment.OrderInput{Amount: 50000, Currency: "INR", Receipt: "rcpt_1"})
	require.NoError(t, err)
	assert.Equal(t, "order_Q1w2e3r4t5y6u7", order.ID)
	assert.Equal(t, "created", order.Status)
	assert.JSONEq(t, orderJSON, string(order.Raw))
}

func TestCreateOrder_GatewayRejects(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Order amount less than minimum amount allowed","source":"business","step":"payment_initiation","reason":"input_validation_failed"}}`))
	})

	_, err := p.CreateOrder(context.Background(), &payment.OrderInput{Amount: 10, Currency: "INR"})
	require.Error(t, err)

	var apiErr *httpclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "BAD_REQUEST_ERROR", apiErr.Code)
	assert.Equal(t, "Order amount less than minimum amount allowed", apiErr.Message)
}

func TestCreateOrder_AuthFailure(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
	})

	_, err := p.CreateOrder(context.Background(), &payment.OrderInput{Amount: 100, Currency: "INR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Authentication failed")
}

func TestNewProvider_DefaultBaseURL(t *testing.T) {
	p := NewProvider("", "k", "s", nil)
	assert.Equal(t, DefaultBaseURL, p.baseURL)
	assert.Equal(t, "razorpay", p.Name())
}

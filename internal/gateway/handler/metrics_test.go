package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsIPAllowlist(t *testing.T) {
	handler := metricsIPAllowlist([]string{"10.0.0.0/8", "not-a-cidr", "::1/128"}, testLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		}),
	)

	tests := []struct {
		remoteAddr string
		want       int
	}{
		{"10.1.2.3:1234", http.StatusOK},
		{"[::1]:1234", http.StatusOK},
		{"203.0.113.50:1234", http.StatusForbidden},
		{"garbage", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.remoteAddr, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			req.RemoteAddr = tt.remoteAddr
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, rr.Body.String(), "FORBIDDEN")
			}
		})
	}
}

func TestMetricsIPAllowlist_IgnoresForwardedFor(t *testing.T) {
	handler := metricsIPAllowlist([]string{"10.0.0.0/8"}, testLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.RemoteAddr = "203.0.113.50:1234"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

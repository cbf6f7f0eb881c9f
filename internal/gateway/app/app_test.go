package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/config"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/proxy"
)

func TestHostPort(t *testing.T) {
	assert.Equal(t, "svc:5000", hostPort("http", "svc:5000"))
	assert.Equal(t, "svc:80", hostPort("http", "svc"))
	assert.Equal(t, "svc:443", hostPort("https", "svc"))
}

func TestDialCheck(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()

	cfg := &config.Config{
		StorefrontServiceURL: up.URL,
		CartServiceURL:       down.URL,
		ProxyDialTimeout:     time.Second,
		ProxyResponseTimeout: time.Second,
		ProxyIdleTimeout:     time.Second,
		ProxyMaxIdleConns:    1,
	}
	sp, err := proxy.NewServiceProxy(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, dialCheck(sp, proxy.Storefront)(ctx))
	assert.Error(t, dialCheck(sp, proxy.Cart)(ctx))
	assert.Error(t, dialCheck(sp, "search")(ctx))
}

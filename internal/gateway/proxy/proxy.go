package proxy

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/config"
	pkghttputil "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httputil"
)

// Upstream service names.
const (
	Storefront = "storefront"
	Cart       = "cart"
)

// ServiceProxy holds one reverse proxy per upstream service.
type ServiceProxy struct {
	routes  map[string]*httputil.ReverseProxy
	targets map[string]*url.URL
	logger  *slog.Logger
}

// NewServiceProxy creates reverse proxies for the storefront and cart
// services sharing one pooled transport.
func NewServiceProxy(cfg *config.Config, logger *slog.Logger) (*ServiceProxy, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ProxyDialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          cfg.ProxyMaxIdleConns,
		MaxIdleConnsPerHost:   cfg.ProxyMaxIdleConns,
		IdleConnTimeout:       cfg.ProxyIdleTimeout,
		ResponseHeaderTimeout: cfg.ProxyResponseTimeout,
	}

	sp := &ServiceProxy{
		routes:  make(map[string]*httputil.ReverseProxy),
		targets: make(map[string]*url.URL),
		logger:  logger,
	}

	for name, rawURL := range map[string]string{
		Storefront: cfg.StorefrontServiceURL,
		Cart:       cfg.CartServiceURL,
	} {
		target, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse %s service URL %q: %w", name, rawURL, err)
		}

		sp.routes[name] = &httputil.ReverseProxy{
			Rewrite:      rewrite(target),
			Transport:    transport,
			ErrorHandler: sp.errorHandler(name),
		}
		sp.targets[name] = target

		logger.Info("registered service proxy",
			slog.String("service", name),
			slog.String("target", rawURL),
		)
	}

	return sp, nil
}

// rewrite points the outbound request at target, records the client in the
// X-Forwarded-* headers and carries the trace context upstream.
func rewrite(target *url.URL) func(*httputil.ProxyRequest) {
	return func(pr *httputil.ProxyRequest) {
		pr.SetURL(target)
		pr.Out.Host = target.Host
		pr.SetXForwarded()
		otel.GetTextMapPropagator().Inject(pr.In.Context(), propagation.HeaderCarrier(pr.Out.Header))
	}
}

// Handler returns the proxy for serviceName.
func (sp *ServiceProxy) Handler(serviceName string) http.Handler {
	proxy, ok := sp.routes[serviceName]
	if !ok {
		sp.logger.Error("no proxy registered for service", slog.String("service", serviceName))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeProxyError(w, "SERVICE_UNAVAILABLE", "service not configured")
		})
	}
	return proxy
}

// Target returns the upstream URL for serviceName.
func (sp *ServiceProxy) Target(serviceName string) (*url.URL, bool) {
	u, ok := sp.targets[serviceName]
	return u, ok
}

func (sp *ServiceProxy) errorHandler(serviceName string) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		sp.logger.ErrorContext(r.Context(), "proxy error",
			slog.String("service", serviceName),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeProxyError(w, "BAD_GATEWAY", "upstream service unavailable")
	}
}

func writeProxyError(w http.ResponseWriter, code, message string) {
	pkghttputil.WriteJSON(w, http.StatusBadGateway, pkghttputil.Response{
		Error: &pkghttputil.ErrorResponse{Code: code, Message: message},
	})
}

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/config"
	gwmiddleware "github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/middleware"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/proxy"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/health"
	pkgmiddleware "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/middleware"
)

// NewRouter creates the gateway router: static images, health and metrics
// endpoints, and the /api surface proxied to the storefront and cart
// services.
func NewRouter(cfg *config.Config, sp *proxy.ServiceProxy, limiter *gwmiddleware.RateLimiter, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	cors := pkgmiddleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins

	r.Use(pkgmiddleware.CORS(cors))
	r.Use(limiter.Middleware)
	r.Use(pkgmiddleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(pkgmiddleware.RequestLogging(logger))
	r.Use(pkgmiddleware.PrometheusMetrics("gateway"))
	r.Use(pkgmiddleware.Tracing("gateway"))
	r.Use(pkgmiddleware.RequestLogger(logger))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", metricsIPAllowlist(cfg.MetricsAllowedCIDRs, logger)(promhttp.Handler()))

	images := pkgmiddleware.CacheControl(time.Hour)(http.StripPrefix("/images", staticFiles(cfg.ImagesDir)))
	r.Method(http.MethodGet, "/images/*", images)
	r.Method(http.MethodHead, "/images/*", images)

	r.Route("/api", func(r chi.Router) {
		r.Use(gwmiddleware.OptionalJWTAuth(cfg.JWTSecret, logger))

		r.Handle("/cart", sp.Handler(proxy.Cart))
		r.Handle("/cart/*", sp.Handler(proxy.Cart))

		// Everything else, including /api/create-order, is the storefront's.
		r.Handle("/*", sp.Handler(proxy.Storefront))
	})

	return r
}

package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/health"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/middleware"
)

const serviceName = "storefront"

// Handlers groups the storefront's endpoint handlers.
type Handlers struct {
	Wishlist *WishlistHandler
	Banner   *BannerHandler
	Order    *OrderHandler
}

// NewRouter creates a chi router with all storefront routes registered.
// corsOrigins applies when the SPA calls the service without the gateway.
func NewRouter(h Handlers, healthHandler *health.Handler, logger *slog.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	cors := middleware.DefaultCORSConfig()
	if len(corsOrigins) > 0 {
		cors.AllowedOrigins = corsOrigins
	}

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cors))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.Identity)
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/create-order", h.Order.Create)

		r.With(middleware.CacheControl(time.Minute)).Get("/banners", h.Banner.List)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.Wishlist.List)
			r.Post("/", h.Wishlist.Save)
			r.Post("/sync", h.Wishlist.Sync)
		})
	})

	return r
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/logger"
)

// RequestLogger stores a logger enriched with correlation, user, device and
// trace identifiers in the request context. Mount it after RequestLogging,
// Tracing and Identity.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if uid := UserIDFromContext(ctx); uid != "" {
				ctx = logger.WithUserID(ctx, uid)
			}
			if did := DeviceIDFromContext(ctx); did != "" {
				ctx = logger.WithDeviceID(ctx, did)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

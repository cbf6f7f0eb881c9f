package middleware

import (
	"context"
	"net/http"
	"strings"
)

// Headers carrying the caller identity. The gateway sets HeaderUserID after
// validating a bearer token; the SPA sends HeaderDeviceID on every request.
const (
	HeaderUserID   = "X-User-ID"
	HeaderDeviceID = "X-Device-ID"
)

type identityKey string

const (
	userIDKey   identityKey = "user_id"
	deviceIDKey identityKey = "device_id"
)

// maxDeviceIDLen bounds device IDs, which end up inside storage keys.
const maxDeviceIDLen = 128

// Identity copies the user and device headers into the request context.
// Both are optional; handlers decide which paths require them.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if uid := strings.TrimSpace(r.Header.Get(HeaderUserID)); uid != "" {
			ctx = context.WithValue(ctx, userIDKey, uid)
		}
		if did := strings.TrimSpace(r.Header.Get(HeaderDeviceID)); validDeviceID(did) {
			ctx = context.WithValue(ctx, deviceIDKey, did)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validDeviceID(id string) bool {
	if id == "" || len(id) > maxDeviceIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// UserIDFromContext returns the authenticated user ID, or "".
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// DeviceIDFromContext returns the caller's device ID, or "".
func DeviceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(deviceIDKey).(string); ok {
		return id
	}
	return ""
}

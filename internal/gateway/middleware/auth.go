package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httputil"
	pkgmiddleware "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/middleware"
)

// OptionalJWTAuth identifies signed-in shoppers without requiring sign-in.
//
// Any client-supplied X-User-ID is dropped. A request without an
// Authorization header passes through anonymously; a valid bearer token sets
// X-User-ID from its user_id (or sub) claim for the upstream service; a
// malformed, expired or wrongly signed token is rejected with 401.
func OptionalJWTAuth(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Header.Del(pkgmiddleware.HeaderUserID)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenString) == "" {
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization header format")
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenString), claims, keyFunc)
			if err != nil || !token.Valid {
				logger.Warn("invalid JWT token",
					slog.String("path", r.URL.Path),
					slog.String("error", errString(err)),
				)
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
				return
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				userID, _ = claims["sub"].(string)
			}
			if userID == "" {
				writeJSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "token carries no user")
				return
			}

			r.Header.Set(pkgmiddleware.HeaderUserID, userID)
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	httputil.WriteJSON(w, status, httputil.Response{
		Error: &httputil.ErrorResponse{Code: code, Message: message},
	})
}

func errString(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

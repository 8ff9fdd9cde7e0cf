package httpx

import (
	"context"
	"net/http"
	"strings"

	"bookscan/internal/platform/crypto"
)

// DeviceChecker reports whether a device may still use its token.
type DeviceChecker interface {
	IsActive(ctx context.Context, deviceID string) (bool, error)
}

// AuthMiddleware accepts device bearer tokens. devices may be nil.
func AuthMiddleware(secret string, devices DeviceChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Missing bearer token", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := crypto.ParseToken(secret, token)
			if err != nil {
				msg := "Invalid token"
				if crypto.IsExpired(err) {
					msg = "Token expired"
				}
				JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, msg, nil)
				return
			}

			if devices != nil {
				active, err := devices.IsActive(r.Context(), claims.Sub)
				if err != nil {
					InternalError(w, r)
					return
				}
				if !active {
					JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Device revoked", nil)
					return
				}
			}

			ctx := ContextWithDevice(r.Context(), claims.Sub, claims.Platform)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

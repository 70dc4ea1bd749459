package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/hexaparts/procurement-api/internal/config"
	"go.uber.org/zap"
)

// APIKey returns a middleware that requires a valid X-API-Key header.
// When no key is configured the check is skipped so local development
// works without one.
func APIKey(cfg *config.ApiKeyConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.Value)) != 1 {
				logger.Warn("rejected request with invalid API key",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"A valid API key is required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

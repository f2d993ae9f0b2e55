// Package middleware holds HTTP middleware for the web server.
package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"centermap/internal/config"
)

// AdminKey gates the admin surface on the ?key= query parameter.
// The comparison is constant time. When no key is configured the
// admin surface is disabled outright rather than open.
func AdminKey(cfg *config.AdminConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.AdminEnabled() {
				http.Error(w, `{"error":"admin mode is disabled"}`, http.StatusForbidden)
				return
			}

			key := r.URL.Query().Get("key")
			if key == "" {
				slog.Warn("admin: missing key",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, `{"error":"missing admin key"}`, http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.Key)) != 1 {
				slog.Warn("admin: invalid key",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, `{"error":"invalid admin key"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

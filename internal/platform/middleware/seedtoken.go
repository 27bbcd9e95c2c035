package middleware

import (
	"log/slog"
	"net/http"

	"extendbee/pkg/secrets"
)

// RequireSeedToken guards the demo-data seeding endpoint. The expected token
// is stored as a bcrypt hash so the plaintext never lives in config.
func RequireSeedToken(expectedHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Seed-Token")
			if token == "" || secrets.Verify(token, expectedHash) != nil {
				logger.WarnContext(r.Context(), "seed token mismatch",
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"seed token required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

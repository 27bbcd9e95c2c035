package middleware

import "net/http"

// BodyLimit caps request body size with http.MaxBytesReader, which answers
// oversized bodies with 413 and closes the connection. Apply it before any
// JSON decoding.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

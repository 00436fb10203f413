package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes caps JSON request bodies (64 KiB is plenty for a recipe).
const DefaultMaxBodyBytes = 64 << 10

// MaxBytes limits the request body size. Reads past the limit fail with
// *http.MaxBytesError, which handlers turn into 413.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// DefaultCORSAllowedMethods covers every verb the recipe routes use.
var DefaultCORSAllowedMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}

// DefaultCORSAllowedHeaders is the default set of request headers allowed for CORS.
var DefaultCORSAllowedHeaders = []string{"Accept", "Authorization", "Content-Type"}

// CORS sets CORS headers for allowed origins and answers their preflight
// requests. With no origins configured it is a no-op.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: DefaultCORSAllowedMethods,
		AllowedHeaders: DefaultCORSAllowedHeaders,
		MaxAge:         86400,
	})
}

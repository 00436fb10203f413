package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/recipe-api/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// Prometheus records request duration and count per route pattern
// (e.g. /recipes/{id}), so ids never become label values.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		if route == "/metrics" {
			return
		}
		metrics.RecordRequest(r.Method, route, sw.status, time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

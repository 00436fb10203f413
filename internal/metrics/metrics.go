package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// AuthFailures counts rejected requests by guard (credentials, bearer).
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Requests rejected by an auth guard",
		},
		[]string{"guard"},
	)

	// RecipeMutations counts successful recipe writes by action.
	RecipeMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_mutations_total",
			Help: "Successful recipe create, update and delete operations",
		},
		[]string{"action"},
	)

	// RecipesStored is refreshed periodically by the scheduler.
	RecipesStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipes_stored",
			Help: "Number of recipes in the store at the last refresh",
		},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AuthFailures, RecipeMutations, RecipesStored)
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, route string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, route, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, route, status).Inc()
}

func IncAuthFailures(guard string) {
	AuthFailures.WithLabelValues(guard).Inc()
}

func IncRecipeMutations(action string) {
	RecipeMutations.WithLabelValues(action).Inc()
}

func SetRecipesStored(n int64) {
	RecipesStored.Set(float64(n))
}

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics. The path label is the chi route pattern, never the raw URL,
// so ids in paths do not explode cardinality.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funews_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "funews_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "funews_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Auth metrics.
var (
	// LoginAttempts counts login attempts by result: success, failure or error.
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funews_login_attempts_total",
			Help: "Total login attempts by result",
		},
		[]string{"result"},
	)

	// RateLimited counts requests rejected by the per-IP limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "funews_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// ForbiddenAttempts counts authenticated requests refused for their role.
	ForbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funews_forbidden_attempts_total",
			Help: "Forbidden access attempts by role and method",
		},
		[]string{"role", "method"},
	)
)

const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginError   = "error"
)

// RecordLogin records the outcome of a login attempt.
func RecordLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

// RecordForbidden records a role check that refused the caller.
func RecordForbidden(role, method string) {
	ForbiddenAttempts.WithLabelValues(role, method).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

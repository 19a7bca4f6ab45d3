// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"

	"house31/internal/domain"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "house31_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "house31_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Sync pipeline metrics
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "house31_sync_runs_total",
			Help: "Total number of sync runs by trigger and outcome",
		},
		[]string{"trigger", "status"},
	)

	SyncRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "house31_sync_run_duration_seconds",
			Help:    "Sync run duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"trigger"},
	)

	PostsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "house31_posts_dropped_total",
			Help: "Posts rejected by the normalizer",
		},
		[]string{"reason"},
	)

	PostsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "house31_posts_published_total",
			Help: "Posts written to the curated snapshot",
		},
		[]string{"category"},
	)

	// Upstream metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "house31_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// Recorder reports sync outcomes to the package collectors.
type Recorder struct{}

// ObserveRun counts a run and records its duration.
func (Recorder) ObserveRun(trigger, status string, d time.Duration) {
	SyncRunsTotal.WithLabelValues(trigger, status).Inc()
	SyncRunDuration.WithLabelValues(trigger).Observe(d.Seconds())
}

// PostsDropped adds n dropped posts for reason.
func (Recorder) PostsDropped(reason string, n int) {
	PostsDroppedTotal.WithLabelValues(reason).Add(float64(n))
}

// PostsPublished adds n published posts for category.
func (Recorder) PostsPublished(category domain.Category, n int) {
	PostsPublishedTotal.WithLabelValues(string(category)).Add(float64(n))
}

// BreakerStateChanged tracks circuit breaker transitions.
func BreakerStateChanged(name string, _, to gobreaker.State) {
	var v float64
	switch to {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	CircuitBreakerState.WithLabelValues(name).Set(v)
}

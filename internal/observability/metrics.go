package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "operadoras_api_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operadoras_api_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// QueryDuration tracks how long each query port operation takes
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "operadoras_api_query_duration_seconds",
			Help:    "Duration of store queries in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	// RateLimitDecisions counts rate limiter outcomes per backend
	RateLimitDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operadoras_api_rate_limit_decisions_total",
			Help: "Number of rate limit decisions",
		},
		[]string{"backend", "decision"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "operadoras_api_active_connections",
			Help: "Number of active connections",
		},
	)
)

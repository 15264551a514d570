// Package observability exposes Prometheus metrics for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheResults counts cache-aside lookups by outcome (hit/miss).
	CacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_cache_results_total",
		Help: "Total number of cache lookups by outcome",
	}, []string{"outcome"})

	// AuthFailures counts rejected requests at the authentication gate by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_auth_failures_total",
		Help: "Total number of authentication failures by reason",
	}, []string{"reason"})
)

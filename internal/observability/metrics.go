// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "telanix_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "telanix_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// EngagementMutations counts engagement writes by relation kind and outcome.
	EngagementMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "telanix_engagement_mutations_total",
		Help: "Total engagement mutations by kind and outcome",
	}, []string{"kind", "outcome"})

	// CounterClamps counts stats decrements that would have gone negative.
	// Any increment here indicates a counter/relation inconsistency bug.
	CounterClamps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "telanix_stats_counter_clamps_total",
		Help: "Total stats decrements clamped at zero",
	}, []string{"counter"})
)

// ObserveQuery records the latency of a database query, e.g. via defer:
//
//	defer ObserveQuery("insert", "likes", time.Now())
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// RecordMutation increments the engagement mutation counter.
func RecordMutation(kind, outcome string) {
	EngagementMutations.WithLabelValues(kind, outcome).Inc()
}

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postboard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostOperations counts completed post use cases by operation and outcome.
	PostOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_post_operations_total",
		Help: "Total number of post operations by outcome",
	}, []string{"operation", "outcome"})

	// PostEventsPublished counts post events pushed to Redis by event type.
	PostEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_post_events_published_total",
		Help: "Total number of post events published",
	}, []string{"type"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

// RecordPostOperation increments PostOperations for the outcome of err.
func RecordPostOperation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	PostOperations.WithLabelValues(operation, outcome).Inc()
}

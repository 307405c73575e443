package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChunksDispatchedTotal counts chunk dispatches the master has sent,
	// labeled by the resulting outcome status.
	ChunksDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crucible_master",
			Name:      "chunks_dispatched_total",
			Help:      "Chunk dispatches, labeled by resulting status.",
		},
		[]string{"status"},
	)

	// BreakerOpensTotal counts how many times a minion's circuit breaker
	// has tripped to OPEN.
	BreakerOpensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crucible_master",
			Name:      "breaker_opens_total",
			Help:      "Circuit breaker open transitions, labeled by endpoint.",
		},
		[]string{"endpoint"},
	)

	// JobsCompletedTotal counts jobs that reached a terminal state,
	// labeled by result.
	JobsCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crucible_master",
			Name:      "jobs_completed_total",
			Help:      "Jobs that reached a terminal result.",
		},
		[]string{"result"},
	)

	// MinionChunksProcessedTotal counts crack requests a minion has
	// completed, labeled by the outcome it reported.
	MinionChunksProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crucible_minion",
			Name:      "chunks_processed_total",
			Help:      "Crack requests completed, labeled by outcome status.",
		},
		[]string{"status"},
	)
)

// Handler returns the standard Prometheus scrape handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MarketsListed tracks markets seen in the latest tick.
	MarketsListed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resolver_markets_listed",
		Help: "Number of program markets seen in the latest poll tick",
	})

	// ExpiredMarkets tracks expired unresolved markets in the latest tick.
	ExpiredMarkets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resolver_expired_markets",
		Help: "Number of expired unresolved markets in the latest poll tick",
	})

	// ResolutionAttemptsTotal tracks resolution attempts by result.
	ResolutionAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_resolution_attempts_total",
		Help: "Total resolution attempts by result",
	}, []string{"result"})

	// ResolutionDurationSeconds tracks per-market resolution latency.
	ResolutionDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resolver_resolution_duration_seconds",
		Help:    "Duration of individual market resolution attempts",
		Buckets: prometheus.DefBuckets,
	})

	// TickDurationSeconds tracks full poll cycle latency.
	TickDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resolver_tick_duration_seconds",
		Help:    "Duration of full poll cycles",
		Buckets: prometheus.DefBuckets,
	})

	// TickErrorsTotal tracks poll cycles aborted by listing failures.
	TickErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resolver_tick_errors_total",
		Help: "Total poll cycles aborted because market listing failed",
	})
)

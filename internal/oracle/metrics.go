package oracle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuotesFetchedTotal counts quotes successfully fetched from Hermes.
	QuotesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resolver_oracle_quotes_fetched_total",
		Help: "Total number of price quotes fetched from the oracle",
	})

	// FetchErrorsTotal counts oracle fetch failures by kind.
	FetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_oracle_fetch_errors_total",
		Help: "Total number of oracle fetch failures, by kind",
	}, []string{"kind"})

	// FetchDurationSeconds tracks oracle request latency.
	FetchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resolver_oracle_fetch_duration_seconds",
		Help:    "Duration of oracle price fetch requests",
		Buckets: prometheus.DefBuckets,
	})
)

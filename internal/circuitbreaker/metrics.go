package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BreakerEnabled indicates whether the circuit breaker allows transaction submission.
	BreakerEnabled = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resolver_circuit_breaker_enabled",
		Help: "Whether circuit breaker allows transaction submission (1=enabled, 0=disabled)",
	})

	// BreakerBalance tracks the last checked wallet balance.
	BreakerBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resolver_circuit_breaker_balance_lamports",
		Help: "Last checked SOL balance of the resolver wallet, in lamports",
	})

	// BreakerDisableThreshold tracks the current threshold for halting submission.
	BreakerDisableThreshold = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resolver_circuit_breaker_disable_threshold_lamports",
		Help: "Current balance threshold for halting submission (dynamically calculated)",
	})

	// BreakerEnableThreshold tracks the current threshold for resuming submission.
	BreakerEnableThreshold = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resolver_circuit_breaker_enable_threshold_lamports",
		Help: "Current balance threshold for resuming submission (with hysteresis)",
	})

	// BreakerAvgFee tracks the rolling average observed transaction fee.
	BreakerAvgFee = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resolver_circuit_breaker_avg_fee_lamports",
		Help: "Rolling average transaction fee from recent submissions (used for threshold calculation)",
	})

	// BreakerStateChanges tracks the number of times the circuit breaker changed state.
	BreakerStateChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resolver_circuit_breaker_state_changes_total",
		Help: "Total number of times circuit breaker changed state (enabled/disabled)",
	})

	// BreakerCheckDuration tracks the time taken to check the wallet balance.
	BreakerCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resolver_circuit_breaker_check_duration_seconds",
		Help:    "Time taken to check wallet balance",
		Buckets: prometheus.DefBuckets,
	})
)

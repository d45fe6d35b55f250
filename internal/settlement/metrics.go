package settlement

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ComputationsTotal counts successful payout computations.
	ComputationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resolver_settlement_computations_total",
		Help: "Total number of payout computations performed",
	})

	// ClaimRejectionsTotal counts claim previews rejected per reason.
	ClaimRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_settlement_claim_rejections_total",
		Help: "Total number of claim previews rejected, by reason",
	}, []string{"reason"})
)

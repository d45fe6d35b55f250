package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ListDurationSeconds tracks account listing latency by account kind.
	ListDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resolver_ledger_list_duration_seconds",
		Help:    "Duration of program account listing requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	// ListErrorsTotal counts listing failures by account kind.
	ListErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_ledger_list_errors_total",
		Help: "Total number of program account listing failures",
	}, []string{"kind"})

	// IncompatibleAccountsTotal counts account blobs skipped at the list
	// boundary because they failed the layout check.
	IncompatibleAccountsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_ledger_incompatible_accounts_total",
		Help: "Total number of accounts skipped due to incompatible layout",
	}, []string{"kind"})

	// TransactionsTotal counts submitted transactions by instruction and
	// result.
	TransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_ledger_transactions_total",
		Help: "Total number of ledger transactions, by instruction and result",
	}, []string{"instruction", "result"})
)

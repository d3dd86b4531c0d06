package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinivent_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// StockEntries counts recorded stock transactions by type (in|out|adjust).
	StockEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinivent_stock_entries_total",
			Help: "Total number of recorded stock transactions",
		},
		[]string{"type"},
	)

	// InviteOutcomes counts invite acceptances by result (accepted|rejected).
	InviteOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinivent_invite_outcomes_total",
			Help: "Total number of invite acceptance attempts",
		},
		[]string{"result"},
	)
)

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "remit"

var (
	RateRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_refresh_total",
			Help:      "Rate source refresh attempts by result.",
		},
		[]string{"result"},
	)

	RateCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_cache_lookups_total",
			Help:      "Rate cache lookups by result (hit, miss).",
		},
		[]string{"result"},
	)

	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Quote calculations by target currency and result.",
		},
		[]string{"currency", "result"},
	)

	TransactionsCommittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_committed_total",
			Help:      "Committed transactions by target currency and final status.",
		},
		[]string{"currency", "status"},
	)

	RateSourceFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rate_source_fetch_duration_seconds",
			Help:      "Latency of calls to the external rate source.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	metricListingsChecked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hunter_listings_checked_total",
		Help: "Listings pulled from a source and considered by the pipeline.",
	}, []string{"source"})

	metricDuplicates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hunter_duplicates_total",
		Help: "Listings rejected by the fingerprint ledger as already seen.",
	}, []string{"source"})

	metricDeals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hunter_deals_total",
		Help: "Profitable deals pushed to the notifier.",
	}, []string{"source"})

	metricLedgerFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hunter_ledger_failures_total",
		Help: "Hard ledger storage failures (not duplicates).",
	})

	metricScanCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hunter_scan_cycles_total",
		Help: "Completed scan cycles.",
	})
)

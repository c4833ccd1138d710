// Package metrics exposes the Prometheus counters of the currency core.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync operation labels.
const (
	SyncOpPush      = "push"
	SyncOpPull      = "pull"
	SyncOpReconcile = "reconcile"
)

// Sync result labels.
const (
	SyncResultApplied = "applied"
	SyncResultNoop    = "noop"
	SyncResultSkipped = "skipped"
	SyncResultBusy    = "busy"
	SyncResultFailed  = "failed"
)

var (
	conversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcc_conversions_total",
			Help: "Total number of currency conversions performed",
		},
		[]string{"target", "logged"},
	)

	syncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcc_sync_operations_total",
			Help: "Total number of default currency sync runs by outcome",
		},
		[]string{"operation", "result"},
	)

	rateUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcc_rate_updates_total",
			Help: "Total number of currency rate updates by source",
		},
		[]string{"source"},
	)
)

// RecordConversion counts one successful conversion.
func RecordConversion(target string, logged bool) {
	conversionsTotal.WithLabelValues(target, strconv.FormatBool(logged)).Inc()
}

// RecordSync counts one sync run.
func RecordSync(operation, result string) {
	syncOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordRateUpdate counts one committed rate change.
func RecordRateUpdate(source string) {
	rateUpdatesTotal.WithLabelValues(source).Inc()
}

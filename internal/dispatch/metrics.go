package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch metrics for Prometheus monitoring.
var (
	CyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_dispatch_cycles_total",
			Help: "Total number of dispatch cycles by result",
		},
		[]string{"result"}, // processed, empty, busy, error
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_notifications_total",
			Help: "Total number of queue entries handled by outcome",
		},
		[]string{"outcome"}, // sent, skipped, failed
	)

	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notifier_dispatch_cycle_duration_seconds",
			Help:    "Duration of dispatch cycles, excluding pacing",
			Buckets: prometheus.DefBuckets,
		},
	)
)

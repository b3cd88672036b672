package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Queue metrics for Prometheus monitoring.
var (
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notifier_queue_depth",
			Help: "Number of pending notification entries in the queue",
		},
	)

	EntriesReadTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_queue_entries_read_total",
			Help: "Total number of entries read from the queue head",
		},
	)

	EntriesTrimmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_queue_entries_trimmed_total",
			Help: "Total number of entries trimmed from the queue head",
		},
	)
)

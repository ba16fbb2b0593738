package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "broodsire",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Document cache lookups by result (hit, miss).",
	}, []string{"result"})

	buildErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "broodsire",
		Subsystem: "cache",
		Name:      "build_errors_total",
		Help:      "Failed document loads by source error kind.",
	}, []string{"kind"})

	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "broodsire",
		Subsystem: "cache",
		Name:      "build_duration_seconds",
		Help:      "Time to parse and index a document.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	invalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "broodsire",
		Subsystem: "cache",
		Name:      "invalidations_total",
		Help:      "Explicit cache invalidations, including file watcher events.",
	})
)

// Package metrics holds the Prometheus collectors of the recap pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecapRequests counts recap requests by kind (movie|series|previously) and
	// outcome (hit|generated|error).
	RecapRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recap_requests_total",
			Help: "Recap requests by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	GenerationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recap_generation_attempts_total",
			Help: "Calls to the text generation provider by result",
		},
		[]string{"result"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recap_generation_duration_seconds",
			Help:    "Wall time of one generation call including retries",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120, 180},
		},
	)

	// CanonFetches counts wiki page fetches by strategy (direct|relay|browser) and
	// result (ok|blocked|missing|error).
	CanonFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recap_canon_fetches_total",
			Help: "Canon wiki page fetches by strategy and result",
		},
		[]string{"strategy", "result"},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recap_cache_entries",
			Help: "Completed recaps currently cached",
		},
	)
)

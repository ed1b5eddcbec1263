package pipeline

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesProcessedTotal prometheus.Counter
	skipsTotal          *prometheus.CounterVec
	candidatesTotal     *prometheus.CounterVec

	metricsOnce sync.Once
)

// initMetrics registers the pipeline collectors. Safe to call repeatedly.
func initMetrics() {
	metricsOnce.Do(func() {
		pagesProcessedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "leadscout_pages_processed_total",
				Help: "Total number of seed URLs processed, accepted or not.",
			},
		)

		skipsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadscout_skips_total",
				Help: "Total number of skipped seed URLs, labeled by reason.",
			},
			[]string{"reason"},
		)

		candidatesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadscout_candidates_total",
				Help: "Total number of accepted candidates, labeled by tier.",
			},
			[]string{"tier"},
		)
	})
}

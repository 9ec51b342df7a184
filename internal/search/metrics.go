package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the prometheus collectors a Searcher records into.
type Metrics struct {
	searches    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	candidates  prometheus.Histogram
	results     prometheus.Histogram
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil
// reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jisho_searches_total",
			Help: "Searches by query mode and outcome",
		}, []string{"mode", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jisho_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"mode"}),
		candidates: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "jisho_search_candidates",
			Help:    "Dictionary candidates visited per search",
			Buckets: prometheus.ExponentialBuckets(1, 10, 8),
		}),
		results: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "jisho_search_results",
			Help:    "Results returned per search",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 200, 1000},
		}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "jisho_cache_hits_total",
			Help: "Searches answered from the result cache",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "jisho_cache_misses_total",
			Help: "Searches not found in the result cache",
		}),
	}
}

func (m *Metrics) observe(mode, status string, d time.Duration, candidates, results int) {
	m.searches.WithLabelValues(mode, status).Inc()
	m.duration.WithLabelValues(mode).Observe(d.Seconds())
	if status == statusOK {
		m.candidates.Observe(float64(candidates))
		m.results.Observe(float64(results))
	}
}

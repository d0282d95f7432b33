// Package metrics exposes Prometheus counters for prediction outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of one prediction request.
const (
	OutcomeDataset  = "dataset"
	OutcomeUnknown  = "unknown"
	OutcomeModel    = "model"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	predictionsTotal   *prometheus.CounterVec
	predictionDuration *prometheus.HistogramVec
	classifierFailures prometheus.Counter
	cacheLookups       *prometheus.CounterVec
	matchesReturned    prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		predictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_predictions_total",
				Help: "Total number of prediction requests by outcome",
			},
			[]string{"outcome"},
		),
		predictionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipe_prediction_duration_seconds",
				Help:    "Time spent deciding a prediction, by outcome",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		classifierFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipe_classifier_failures_total",
				Help: "Total number of failed classifier invocations",
			},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_prediction_cache_lookups_total",
				Help: "Prediction cache lookups by result",
			},
			[]string{"result"},
		),
		matchesReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recipe_dataset_matches",
				Help:    "Number of recipes returned by dataset matches",
				Buckets: prometheus.ExponentialBuckets(1, 4, 7),
			},
		),
	}
}

func (m *Metrics) ObservePrediction(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.predictionsTotal.WithLabelValues(outcome).Inc()
	m.predictionDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *Metrics) ObserveMatches(n int) {
	if m == nil {
		return
	}
	m.matchesReturned.Observe(float64(n))
}

func (m *Metrics) ClassifierFailure() {
	if m == nil {
		return
	}
	m.classifierFailures.Inc()
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObservePrediction(OutcomeDataset, 3*time.Millisecond)
	m.ObservePrediction(OutcomeDataset, time.Millisecond)
	m.ObservePrediction(OutcomeUnknown, time.Millisecond)
	m.ClassifierFailure()
	m.CacheLookup(CacheHit)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.predictionsTotal.WithLabelValues(OutcomeDataset)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictionsTotal.WithLabelValues(OutcomeUnknown)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.classifierFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues(CacheHit)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePrediction(OutcomeModel, time.Second)
		m.ObserveMatches(3)
		m.ClassifierFailure()
		m.CacheLookup(CacheMiss)
	})
}

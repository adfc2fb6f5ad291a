package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("counts observations", func(t *testing.T) {
		m := New(prometheus.NewRegistry())

		m.ObserveDetection("FAKE")
		m.ObserveDetection("FAKE")
		m.ObserveDetection("REAL")
		m.ObserveFailure(StagePersist)
		m.ObserveDegradedExplanation()
		m.ObserveHTTPRequest("POST", "/api/v1/detect", "200")

		assert.Equal(t, 2.0, testutil.ToFloat64(m.Detections.WithLabelValues("FAKE")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Detections.WithLabelValues("REAL")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.PipelineFailures.WithLabelValues(StagePersist)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ExplanationDegraded))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/v1/detect", "200")))
	})

	t.Run("records upstream outcome", func(t *testing.T) {
		m := New(prometheus.NewRegistry())

		m.ObserveUpstream("huggingface", time.Now(), nil)
		m.ObserveUpstream("huggingface", time.Now(), errors.New("boom"))

		assert.Equal(t, 2, testutil.CollectAndCount(m.UpstreamDuration))
	})

	t.Run("nil metrics is a no-op", func(t *testing.T) {
		var m *Metrics

		assert.NotPanics(t, func() {
			m.ObserveDetection("FAKE")
			m.ObserveFailure(StageClassify)
			m.ObserveUpstream("groq", time.Now(), nil)
			m.ObserveDegradedExplanation()
			m.ObserveHTTPRequest("GET", "/health", "200")
		})
	})
}

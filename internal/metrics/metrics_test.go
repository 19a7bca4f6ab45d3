package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"

	"house31/internal/domain"
	"house31/internal/metrics"
)

func TestRecorder_ObserveRun(t *testing.T) {
	before := testutil.ToFloat64(metrics.SyncRunsTotal.WithLabelValues("manual", "success"))

	metrics.Recorder{}.ObserveRun("manual", "success", 20*time.Millisecond)

	after := testutil.ToFloat64(metrics.SyncRunsTotal.WithLabelValues("manual", "success"))
	assert.Equal(t, before+1, after)
}

func TestRecorder_PostCounters(t *testing.T) {
	r := metrics.Recorder{}
	dropped := testutil.ToFloat64(metrics.PostsDroppedTotal.WithLabelValues("off_topic"))
	published := testutil.ToFloat64(metrics.PostsPublishedTotal.WithLabelValues("SPACE"))

	r.PostsDropped("off_topic", 3)
	r.PostsPublished(domain.CategorySpace, 2)

	assert.Equal(t, dropped+3, testutil.ToFloat64(metrics.PostsDroppedTotal.WithLabelValues("off_topic")))
	assert.Equal(t, published+2, testutil.ToFloat64(metrics.PostsPublishedTotal.WithLabelValues("SPACE")))
}

func TestBreakerStateChanged(t *testing.T) {
	testCases := []struct {
		to   gobreaker.State
		want float64
	}{
		{gobreaker.StateOpen, 2},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateClosed, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.to.String(), func(t *testing.T) {
			metrics.BreakerStateChanged("test", gobreaker.StateClosed, tc.to)

			assert.Equal(t, tc.want, testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test")))
		})
	}
}

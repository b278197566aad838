package solver

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecorderHookRecordsIterationStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewMetricsRecorder(reg)
	hook := rec.Hook()

	ctl := hook(IterationStats{Iter: 3, Residual: 1.5e-4, Damping: 0.25})
	assert.Equal(t, Continue, ctl)

	assert.Equal(t, 1.5e-4, testutil.ToFloat64(rec.residual))
	assert.Equal(t, 0.25, testutil.ToFloat64(rec.damping))

	count, err := testutil.GatherAndCount(reg, "ezpz_solve_iterations")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

package solver

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder is an alternative consumer of the same per-iteration
// progress contract every Hook implements: instead of (or alongside) a
// plain IterationStats callback, it records iteration count, residual norm
// and damping factor as Prometheus gauges/histograms, for a caller
// embedding the solver in a long-running service.
type MetricsRecorder struct {
	iterations prometheus.Histogram
	residual   prometheus.Gauge
	damping    prometheus.Gauge
}

// NewMetricsRecorder registers its collectors with reg (pass
// prometheus.DefaultRegisterer for the global registry).
func NewMetricsRecorder(reg prometheus.Registerer) *MetricsRecorder {
	m := &MetricsRecorder{
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ezpz_solve_iterations",
			Help:    "Iteration index of each Newton iteration reported to the progress hook.",
			Buckets: prometheus.LinearBuckets(0, 5, 20),
		}),
		residual: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ezpz_solve_residual_norm",
			Help: "Infinity-norm of the residual after the most recent iteration.",
		}),
		damping: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ezpz_solve_damping_factor",
			Help: "Current adaptive damping factor lambda.",
		}),
	}
	reg.MustRegister(m.iterations, m.residual, m.damping)
	return m
}

// Hook adapts the recorder to the solver.Hook signature so it can be
// passed directly to Solve/SolveTiered.
func (m *MetricsRecorder) Hook() Hook {
	return func(stats IterationStats) Control {
		m.residual.Set(stats.Residual)
		m.damping.Set(stats.Damping)
		m.iterations.Observe(float64(stats.Iter))
		return Continue
	}
}

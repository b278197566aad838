package solver

// DampingConfig governs the adaptive step-length damping factor lambda:
// how it grows on good steps, shrinks on bad ones, and the backtracking
// line search used when a step looks like it is diverging. Defaults are
// carried over from newtonls-faer's NewtonCfg, the Rust source this solver
// was distilled from.
type DampingConfig struct {
	Initial           float64
	Min               float64
	Max               float64
	Grow              float64
	Shrink            float64
	DivergenceRatio   float64
	BacktrackFactor   float64
	MaxBacktrackSteps int
}

// Config bundles every tunable of a single Newton solve, per the library
// API shape in the external interfaces section.
type Config struct {
	MaxIterations       int
	ToleranceAbs        float64
	ToleranceRel        float64
	ToleranceStep       float64
	ToleranceConstraint float64
	Adaptive            bool
	Damping             DampingConfig
	Threads             int
	DeadbandArc         float64
	MaxSingularRetries  int
	AcceptRatio         float64
}

// DefaultConfig returns the documented defaults, in the teacher's
// package-level-constant style (types/const.go) but returned as a value so
// callers can override individual fields without touching shared state.
func DefaultConfig() Config {
	return Config{
		MaxIterations:       50,
		ToleranceAbs:        1e-9,
		ToleranceRel:        1e-12,
		ToleranceStep:       1e-10,
		ToleranceConstraint: 1e-6,
		Adaptive:            true,
		Damping: DampingConfig{
			Initial:           1.0,
			Min:               0.1,
			Max:               1.0,
			Grow:              1.1,
			Shrink:            0.5,
			DivergenceRatio:   3.0,
			BacktrackFactor:   0.5,
			MaxBacktrackSteps: 10,
		},
		Threads:            0,
		DeadbandArc:        1e-2,
		MaxSingularRetries: 5,
		AcceptRatio:        0.999,
	}
}

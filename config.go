package ezpz

import "ezpz/solver"

// Config bundles every Newton-solve tunable; see solver.Config for field
// documentation. It is aliased here so callers never need to import
// ezpz/solver directly for the common path.
type Config = solver.Config

// DampingConfig governs the adaptive step-length damping factor.
type DampingConfig = solver.DampingConfig

// DefaultConfig returns the documented defaults (tolerances, damping
// schedule, singular-retry budget) a fresh Config should start from.
func DefaultConfig() Config {
	return solver.DefaultConfig()
}

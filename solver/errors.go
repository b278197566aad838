package solver

import "fmt"

// DimensionMismatchError is an internal invariant violation: a fatal
// programmer error, never expected from valid caller input.
type DimensionMismatchError struct {
	Reason string
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("solver: dimension mismatch: %s", e.Reason)
}

// SingularJacobianError is surfaced only after MaxSingularRetries damping
// shrinks failed to produce an invertible system matrix.
type SingularJacobianError struct {
	Iteration int
}

func (e *SingularJacobianError) Error() string {
	return fmt.Sprintf("solver: singular jacobian at iteration %d, exhausted singular retries", e.Iteration)
}

// DivergedError means the residual grew beyond DivergenceRatio and
// backtracking could not recover a decreasing step.
type DivergedError struct {
	ResidualNorm float64
}

func (e *DivergedError) Error() string {
	return fmt.Sprintf("solver: diverged, residual norm %.3e", e.ResidualNorm)
}

// IterLimitError means MaxIterations was reached without convergence.
type IterLimitError struct {
	ResidualNorm float64
}

func (e *IterLimitError) Error() string {
	return fmt.Sprintf("solver: hit iteration limit, residual norm %.3e", e.ResidualNorm)
}

// StalledError means the step norm fell below tolerance while the residual
// was still above ToleranceConstraint: a locally-consistent best-effort
// solution, not a true convergence.
type StalledError struct {
	ResidualNorm float64
}

func (e *StalledError) Error() string {
	return fmt.Sprintf("solver: stalled, residual norm %.3e", e.ResidualNorm)
}

// CancelledError means the progress hook returned Cancel.
type CancelledError struct{}

func (e *CancelledError) Error() string { return "solver: cancelled by progress hook" }

// UnderconstrainedColumnError means at least one Jacobian column was
// numerically all-zero at the first iteration: some id no active
// constraint's derivative actually depends on at this x, structurally
// underconstrained rather than merely slow to converge. GlobalVarIDs are
// the caller's own ids (not this tier's local column indices), so the
// caller can point at exactly which variable is floating free.
type UnderconstrainedColumnError struct {
	GlobalVarIDs []int
}

func (e *UnderconstrainedColumnError) Error() string {
	return fmt.Sprintf("solver: structurally underconstrained, zero jacobian column(s) for var id(s) %v", e.GlobalVarIDs)
}

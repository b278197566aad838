package ezpz

import (
	"ezpz/ids"
	"ezpz/solver"
)

// Point2D is a solved point's coordinates, read back out of a Solution by
// DatumPoint identity rather than by raw VarID.
type Point2D struct {
	X, Y float64
}

// Solution is the caller-facing result of a solve: the final value vector
// plus enough bookkeeping to answer whether every constraint is satisfied
// and, if not, which ones by the caller's own request index.
type Solution struct {
	diag *solver.Diagnostics
}

// FinalValues returns the dense value vector X, indexed by VarID.
func (s *Solution) FinalValues() []float64 {
	return s.diag.FinalValues
}

// FinalValuePoint reads a DatumPoint's solved coordinates out of X.
func (s *Solution) FinalValuePoint(p *ids.Point) Point2D {
	return Point2D{X: s.diag.FinalValues[p.X], Y: s.diag.FinalValues[p.Y]}
}

// IsSatisfied reports whether every constraint ended within
// ToleranceConstraint of zero residual.
func (s *Solution) IsSatisfied() bool {
	return s.diag.IsSatisfied()
}

// Unsatisfied lists the caller-provided indices of constraints that ended
// outside ToleranceConstraint.
func (s *Solution) Unsatisfied() []int {
	return s.diag.Unsatisfied
}

// Iterations is the iteration count of the last tier solved.
func (s *Solution) Iterations() int {
	return s.diag.Iterations
}

// ResidualNorm is the final residual infinity-norm of the last tier solved.
func (s *Solution) ResidualNorm() float64 {
	return s.diag.ResidualNorm
}

package solver

import (
	"fmt"
	"sort"

	"ezpz/maths"
)

// Diagnostics maps a finished tiered solve back to the caller's
// constraints: the final value vector, which constraints are unsatisfied
// (by stable caller index), iteration count and final residual norm.
type Diagnostics struct {
	FinalValues  maths.Vector
	Unsatisfied  []int
	Iterations   int
	ResidualNorm float64
}

// IsSatisfied reports whether every constraint ended within
// ToleranceConstraint of zero residual.
func (d *Diagnostics) IsSatisfied() bool {
	return len(d.Unsatisfied) == 0
}

// UnsatisfiableError carries the partial, best-effort solution's
// unsatisfied constraint indices. The caller can still read Diagnostics
// for the committed values; this error only flags that not every
// constraint was jointly satisfiable.
type UnsatisfiableError struct {
	Unsatisfied []int
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("solver: %d constraint(s) unsatisfiable: %v", len(e.Unsatisfied), e.Unsatisfied)
}

// sortedCopy returns a defensively-copied, ascending-sorted slice, used
// when reporting unsatisfied indices so callers see a stable order
// regardless of map/tier iteration order upstream.
func sortedCopy(in []int) []int {
	out := append([]int{}, in...)
	sort.Ints(out)
	return out
}

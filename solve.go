// Package ezpz is a 2D geometric constraint solver: declare points and
// scalar unknowns through an id allocator, submit constraints grouped into
// priority tiers, and solve for a value vector that satisfies as many of
// them as possible, highest priority first.
package ezpz

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ezpz/constraint"
	"ezpz/ids"
	"ezpz/maths"
	"ezpz/solver"
)

// Priority is a small non-negative tier number. Requests in a higher tier
// are solved first and folded into every subsequent tier as a large-weight
// soft penalty, so a later tier cannot undo an earlier one while still
// being pulled toward respecting it.
type Priority = int

// HighestPriority is the sentinel tier solved before every other.
const HighestPriority Priority = 1<<31 - 1

// Request pairs a constraint with its priority tier and the caller's own
// stable index for it, used to report unsatisfied constraints back by that
// same index rather than by position in a results slice.
type Request = solver.Request

// Hook is a caller-provided per-iteration progress callback; see
// solver.Hook for the Continue/Cancel contract.
type Hook = solver.Hook

// NewRequest builds a Request for constraint c in the given priority tier,
// identified for diagnostics purposes by index.
func NewRequest(c constraint.Constraint, priority Priority, index int) Request {
	return Request{Constraint: c, Priority: priority, Index: index}
}

// HighestPriorityRequest builds a Request in the sentinel highest tier.
func HighestPriorityRequest(c constraint.Constraint, index int) Request {
	return NewRequest(c, HighestPriority, index)
}

// Solve runs the priority/relaxation layer to completion: X is built from
// guesses (any id not listed defaults to zero), every tier is solved
// highest-priority first, and each solved tier is folded into the later
// ones as soft penalties. ncols must be the id allocator's Len() at submission
// time.
func Solve(requests []Request, guesses map[ids.VarID]float64, ncols int, cfg Config) (*Solution, error) {
	return SolveWithProgress(requests, guesses, ncols, cfg, nil, nil)
}

// SolveWithProgress is Solve plus a per-iteration hook, invoked for every
// tier's Newton loop, and an optional logger the priority layer uses to
// report each tier's outcome (fields: tier, iter, residual).
func SolveWithProgress(requests []Request, guesses map[ids.VarID]float64, ncols int, cfg Config, hook Hook, logger *logrus.Entry) (*Solution, error) {
	maths.InitGlobalParallelism(cfg.Threads)

	x := maths.NewVector(ncols)
	for id, v := range guesses {
		if int(id) < 0 || int(id) >= ncols {
			return nil, &UnknownIdError{ID: id}
		}
		x[id] = v
	}

	diag, err := solver.SolveTiered(requests, x, ncols, cfg, hook, logger)
	sol := &Solution{diag: diag}
	if err != nil {
		return sol, errors.Wrap(err, "ezpz: solve did not fully succeed")
	}
	return sol, nil
}

package solver

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"ezpz/constraint"
	"ezpz/maths"
)

// Request pairs a constraint with its priority tier and the caller's
// stable identity for it, so an unsatisfiable constraint can be reported
// back by the same index the caller submitted it with.
type Request struct {
	Constraint constraint.Constraint
	Priority   int
	Index      int
}

// weighted wraps a lower-priority tier's view of a higher-priority
// constraint: its residual and Jacobian are scaled by a large weight so
// the tier being solved is pulled hard toward respecting it without the
// higher tier's own solve ever being revisited.
type weighted struct {
	inner  constraint.Constraint
	weight float64
}

func (w weighted) Kind() constraint.Kind   { return w.inner.Kind() }
func (w weighted) RowCount() int           { return w.inner.RowCount() }
func (w weighted) Nonzeros(dst []constraint.ColRef) []constraint.ColRef {
	return w.inner.Nonzeros(dst)
}
func (w weighted) Residual(x []float64, out []float64) {
	w.inner.Residual(x, out)
	for i := range out {
		out[i] *= w.weight
	}
}
func (w weighted) Jacobian(x []float64, out []float64) {
	w.inner.Jacobian(x, out)
	for i := range out {
		out[i] *= w.weight
	}
}

// PenaltyWeight is the large weight a higher-priority constraint's
// residual carries when it is injected into a lower tier's
// system as a soft penalty, per spec's priority/relaxation layer design.
const PenaltyWeight = 1e6

type tier struct {
	priority    int
	constraints []constraint.Constraint
	indices     []int
}

func groupTiers(requests []Request) []tier {
	byPriority := map[int]*tier{}
	var priorities []int
	for _, req := range requests {
		t, ok := byPriority[req.Priority]
		if !ok {
			t = &tier{priority: req.Priority}
			byPriority[req.Priority] = t
			priorities = append(priorities, req.Priority)
		}
		t.constraints = append(t.constraints, req.Constraint)
		t.indices = append(t.indices, req.Index)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(priorities)))
	tiers := make([]tier, len(priorities))
	for i, p := range priorities {
		tiers[i] = *byPriority[p]
	}
	return tiers
}

// SolveTiered runs the priority/relaxation layer: solve descending-priority
// tiers in order, folding each tier's constraints, satisfied or not, into
// every later tier as large-weight soft penalties, and reports every constraint whose final
// residual exceeds ToleranceConstraint by its caller-provided index.
func SolveTiered(requests []Request, x maths.Vector, ncols int, cfg Config, hook Hook, logger *logrus.Entry) (*Diagnostics, error) {
	tiers := groupTiers(requests)
	var accumulated []constraint.Constraint
	var unsatisfied []int
	var last *Result
	var lastErr error

	for _, t := range tiers {
		tierConstraints := make([]constraint.Constraint, 0, len(accumulated)+len(t.constraints))
		tierConstraints = append(tierConstraints, accumulated...)
		tierConstraints = append(tierConstraints, t.constraints...)

		model := NewModel(tierConstraints, ncols)
		res, err := Solve(model, x, cfg, hook)
		last, lastErr = res, err
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"tier":     t.priority,
				"iter":     res.Iterations,
				"residual": res.ResidualNorm,
			}).Debug("tier solved")
		}

		rowBuf := maths.NewVector(model.NRows)
		model.Residual(x, rowBuf)
		ownOffset := len(accumulated)
		for i, idx := range t.indices {
			rowOffset := model.rowOffset[ownOffset+i]
			rc := t.constraints[i].RowCount()
			maxAbs := 0.0
			for _, v := range rowBuf[rowOffset : rowOffset+rc] {
				if a := math.Abs(v); a > maxAbs {
					maxAbs = a
				}
			}
			if maxAbs > cfg.ToleranceConstraint {
				unsatisfied = append(unsatisfied, idx)
			}
		}

		for _, c := range t.constraints {
			accumulated = append(accumulated, weighted{inner: c, weight: PenaltyWeight})
		}
	}

	diag := &Diagnostics{FinalValues: append(maths.Vector{}, x...), Unsatisfied: sortedCopy(unsatisfied)}
	if last != nil {
		diag.Iterations = last.Iterations
		diag.ResidualNorm = last.ResidualNorm
	}
	if len(unsatisfied) > 0 {
		return diag, &UnsatisfiableError{Unsatisfied: unsatisfied}
	}
	return diag, lastErr
}

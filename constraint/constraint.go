// Package constraint holds the closed set of geometric constraint kinds
// EZPZ knows how to solve: each kind contributes a fixed number of residual
// rows and its own hand-derived Jacobian entries, following the residual
// and Jacobian split used throughout kcl-ezpz's constraint library.
package constraint

import "ezpz/ids"

// Kind identifies one of the closed set of constraint variants. It exists
// so diagnostics and logging can name a constraint without a type switch.
type Kind int

const (
	KindFixed Kind = iota
	KindDistance
	KindHorizontal
	KindVertical
	KindParallel
	KindPerpendicular
	KindPointOnCircle
	KindPointOnArc
	KindCoincident
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "Fixed"
	case KindDistance:
		return "Distance"
	case KindHorizontal:
		return "Horizontal"
	case KindVertical:
		return "Vertical"
	case KindParallel:
		return "Parallel"
	case KindPerpendicular:
		return "Perpendicular"
	case KindPointOnCircle:
		return "PointOnCircle"
	case KindPointOnArc:
		return "PointOnArc"
	case KindCoincident:
		return "Coincident"
	}
	return "Unknown"
}

// ColRef is one (local row, variable) pair a constraint touches. Sparsity
// building walks every constraint's Nonzeros to assemble the Jacobian's
// symbolic pattern before any numeric value exists.
type ColRef struct {
	Row int
	Col ids.VarID
}

// Constraint is the interface every kind in the closed set implements. None
// of its methods allocate: Nonzeros and Jacobian append into a caller-sized
// destination slice, mirroring the scratch-buffer discipline the rest of
// the solver follows.
type Constraint interface {
	Kind() Kind

	// RowCount is the fixed number of residual rows this constraint
	// contributes (e.g. 1 for Distance, 3 for PointOnArc).
	RowCount() int

	// Nonzeros appends this constraint's (row, column) touches to dst in
	// the same order Jacobian will later write values, and returns the
	// extended slice.
	Nonzeros(dst []ColRef) []ColRef

	// Residual writes this constraint's rows into out (len(out) ==
	// RowCount()), reading variable values from x by VarID.
	Residual(x []float64, out []float64)

	// Jacobian writes the partial derivative for every entry Nonzeros
	// produced, in the same order, into out (len(out) == len(Nonzeros)).
	// Where Nonzeros lists one (row, column) pair more than once, each entry
	// holds that occurrence's share of the derivative and the solver sums
	// them.
	Jacobian(x []float64, out []float64)
}

// get helper shared by every kind; x is indexed directly by VarID.
func get(x []float64, id ids.VarID) float64 { return x[id] }

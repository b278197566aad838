// Package solver assembles a constraint list into a sparse residual system
// and drives it to a solution with a damped Newton engine, following the
// component breakdown in the EZPZ core: sparsity builder, Jacobian cache,
// sparse LU adapter, Newton engine, and the priority/relaxation layer on
// top of them.
package solver

import (
	"ezpz/constraint"
	"ezpz/maths"
)

// Model is one tier's nonlinear system: a fixed constraint list, the
// sparsity-built Jacobian cache, and the slot map that lets refreshing the
// Jacobian run in O(nnz) with no per-iteration searching.
//
// A tier's constraints usually reference only a fraction of the ids the
// caller has allocated overall (an early, high-priority tier may pin just
// two of a sketch's hundred points). The Newton system is built over only
// those referenced columns - GlobalCols maps each local column index back
// to its id in the caller's value vector, in the order each id is first
// referenced - so an untouched id never shows up as an empty, singular
// column in this tier's matrix.
type Model struct {
	Constraints  []constraint.Constraint
	NRows, NCols int // NCols is the number of columns this tier's constraints reference, not the caller's total id count.
	GlobalCols   []int // local column index -> global VarID, first-reference order.
	Pattern      *maths.CSCPattern
	JC           *maths.JacobianCache

	rowOffset  []int
	localNNZ   []int
	slotOffset []int
	slots      []int
	jacScratch []float64
}

// NewModel builds the sparsity pattern and slot map for constraints drawn
// from a value vector of length ncolsGlobal (ids issued by the allocator).
// Only the columns the constraints actually reference end up in the local
// system; ncolsGlobal is used solely to size the global-to-local lookup.
func NewModel(constraints []constraint.Constraint, ncolsGlobal int) *Model {
	m := &Model{
		Constraints: constraints,
		rowOffset:   make([]int, len(constraints)),
		localNNZ:    make([]int, len(constraints)),
		slotOffset:  make([]int, len(constraints)),
	}

	localOf := make([]int, ncolsGlobal)
	for i := range localOf {
		localOf[i] = -1
	}

	type rawEntry struct{ row, globalCol int }
	var raw []rawEntry
	var refBuf []constraint.ColRef
	nrows := 0
	maxLocalNNZ := 0
	for i, c := range constraints {
		m.rowOffset[i] = nrows
		refBuf = c.Nonzeros(refBuf[:0])
		m.localNNZ[i] = len(refBuf)
		if len(refBuf) > maxLocalNNZ {
			maxLocalNNZ = len(refBuf)
		}
		for _, ref := range refBuf {
			gc := int(ref.Col)
			if localOf[gc] == -1 {
				localOf[gc] = len(m.GlobalCols)
				m.GlobalCols = append(m.GlobalCols, gc)
			}
			raw = append(raw, rawEntry{row: nrows + ref.Row, globalCol: gc})
		}
		nrows += c.RowCount()
	}
	m.NRows = nrows
	m.NCols = len(m.GlobalCols)

	entries := make([]maths.Entry, len(raw))
	for i, e := range raw {
		entries[i] = maths.Entry{Row: e.row, Col: localOf[e.globalCol]}
	}
	m.Pattern = maths.BuildCSCPattern(nrows, m.NCols, entries)
	m.JC = maths.NewJacobianCache(m.Pattern)
	m.jacScratch = make([]float64, maxLocalNNZ)

	slots := make([]int, 0, len(entries))
	for i, c := range constraints {
		refBuf = c.Nonzeros(refBuf[:0])
		m.slotOffset[i] = len(slots)
		for _, ref := range refBuf {
			localCol := localOf[int(ref.Col)]
			slot := m.Pattern.SlotOf(m.rowOffset[i]+ref.Row, localCol)
			if slot < 0 {
				panic("solver: sparsity builder produced a pattern missing a declared nonzero")
			}
			slots = append(slots, slot)
		}
	}
	m.slots = slots
	return m
}

// Residual evaluates every constraint's rows into out (len(out) == NRows),
// reading the full global value vector x.
func (m *Model) Residual(x maths.Vector, out maths.Vector) {
	for i, c := range m.Constraints {
		off := m.rowOffset[i]
		c.Residual(x, out[off:off+c.RowCount()])
	}
}

// RefreshJacobian re-evaluates every constraint's analytic Jacobian entries
// (reading the full global x) and writes them into the cached CSC values
// buffer at their precomputed slots. No allocation: the scratch buffer and
// slot map are sized once in NewModel.
func (m *Model) RefreshJacobian(x maths.Vector) {
	m.JC.ZeroValues()
	for i, c := range m.Constraints {
		nnz := m.localNNZ[i]
		scratch := m.jacScratch[:nnz]
		c.Jacobian(x, scratch)
		base := m.slotOffset[i]
		for k := 0; k < nnz; k++ {
			m.JC.Values[m.slots[base+k]] += scratch[k]
		}
	}
}

package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezpz/constraint"
	"ezpz/ids"
	"ezpz/maths"
)

// zeroColConstraint is a single-row constraint whose residual depends on
// col0 but never on col1, so col1's Jacobian slot is always numerically
// zero - a stand-in for a variable no real constraint's derivative
// actually touches.
type zeroColConstraint struct {
	col0, col1 int
}

func (z zeroColConstraint) Kind() constraint.Kind { return constraint.KindFixed }
func (z zeroColConstraint) RowCount() int         { return 1 }

func (z zeroColConstraint) Nonzeros(dst []constraint.ColRef) []constraint.ColRef {
	return append(dst,
		constraint.ColRef{Row: 0, Col: ids.VarID(z.col0)},
		constraint.ColRef{Row: 0, Col: ids.VarID(z.col1)})
}

func (z zeroColConstraint) Residual(x []float64, out []float64) {
	out[0] = x[z.col0] - 1
}

func (z zeroColConstraint) Jacobian(x []float64, out []float64) {
	out[0] = 1
	out[1] = 0
}

func TestSolveReportsUnderconstrainedColumn(t *testing.T) {
	m := NewModel([]constraint.Constraint{zeroColConstraint{col0: 0, col1: 1}}, 2)
	x := maths.NewVector(2)

	_, err := Solve(m, x, DefaultConfig(), nil)
	require.Error(t, err)
	var uce *UnderconstrainedColumnError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, []int{1}, uce.GlobalVarIDs)
}

package constraint

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"ezpz/ids"
)

const fdStep = 1e-6
const fdTol = 1e-5

// checkJacobian evaluates c's analytic Jacobian against a central finite
// difference at n random points, touching only the columns c declares.
func checkJacobian(t *testing.T, c Constraint, n int, x []float64, cols []ids.VarID, rng *rand.Rand) {
	t.Helper()
	rows := c.RowCount()

	var refs []ColRef
	refs = c.Nonzeros(refs[:0])
	analytic := make([]float64, len(refs))

	for trial := 0; trial < n; trial++ {
		for _, col := range cols {
			x[col] = rng.Float64()*4 - 2
		}

		c.Jacobian(x, analytic)

		// A (row, col) pair that Nonzeros lists more than once (a point
		// shared by both lines of a Parallel) gets one share per entry, and
		// the solver sums the shares; compare that sum.
		summed := make(map[ColRef]float64, len(refs))
		for slot, ref := range refs {
			summed[ref] += analytic[slot]
		}

		for _, ref := range refs {
			orig := x[ref.Col]

			x[ref.Col] = orig + fdStep
			plus := make([]float64, rows)
			c.Residual(x, plus)

			x[ref.Col] = orig - fdStep
			minus := make([]float64, rows)
			c.Residual(x, minus)

			x[ref.Col] = orig

			fd := (plus[ref.Row] - minus[ref.Row]) / (2 * fdStep)
			assert.InDeltaf(t, fd, summed[ref], fdTol,
				"kind=%s row=%d col=%d trial=%d", c.Kind(), ref.Row, ref.Col, trial)
		}
	}
}

func allColumns(n int) []ids.VarID {
	cols := make([]ids.VarID, n)
	for i := range cols {
		cols[i] = ids.VarID(i)
	}
	return cols
}

func TestJacobianMatchesFiniteDifference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	gen := ids.NewGen()
	p := ids.NewPoint(gen)
	q := ids.NewPoint(gen)
	circle := ids.Circle{Center: ids.NewPoint(gen), Radius: gen.Next()}
	x := make([]float64, gen.Len())

	cases := []Constraint{
		NewFixed(p.X, 1.5),
		NewDistance(p, q, 3.0),
		NewHorizontal(p, q),
		NewVertical(p, q),
		NewCoincident(p, q),
		NewParallel(ids.Line{P0: p, P1: q}, ids.Line{P0: circle.Center, P1: q}),
		NewPerpendicular(ids.Line{P0: p, P1: q}, ids.Line{P0: circle.Center, P1: q}),
		NewPointOnCircle(p, circle),
		NewPointOnArc(p, circle, 0, 1.2, ids.CCW, 0.2),
		NewPointOnArc(p, circle, 0, 1.2, ids.CW, 0.2),
	}

	for _, c := range cases {
		checkJacobian(t, c, 10, x, allColumns(gen.Len()), rng)
	}
}

func TestArcDeadbandZeroesAngularRows(t *testing.T) {
	gen := ids.NewGen()
	pt := ids.NewPoint(gen)
	circle := ids.Circle{Center: ids.NewPoint(gen), Radius: gen.Next()}
	x := make([]float64, gen.Len())
	x[circle.Radius] = 1.0
	// point well off the circle (radial residual 0.5, deadband 0.05) and
	// at an angle clearly outside the arc's span, where a computed
	// angular excursion would be strongly nonzero if not suppressed.
	x[pt.X], x[pt.Y] = -0.5, 0.0

	arc := NewPointOnArc(pt, circle, 0, 1.2, ids.CCW, 0.05)
	out := make([]float64, 3)
	arc.Residual(x, out)
	assert.Equal(t, 0.0, out[1])
	assert.Equal(t, 0.0, out[2])

	jac := make([]float64, 13)
	arc.Jacobian(x, jac)
	for _, v := range jac[5:] {
		assert.Equal(t, 0.0, v)
	}
}

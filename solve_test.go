package ezpz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezpz/constraint"
	"ezpz/ids"
)

// Scenario 1: two points 4 apart.
func TestTwoPointsFourApart(t *testing.T) {
	gen := ids.NewGen()
	p := ids.NewPoint(gen)
	q := ids.NewPoint(gen)

	requests := []Request{
		HighestPriorityRequest(constraint.NewFixed(p.X, 0), 0),
		HighestPriorityRequest(constraint.NewFixed(p.Y, 0), 1),
		NewRequest(constraint.NewDistance(p, q, 4), 0, 2),
	}
	guesses := map[ids.VarID]float64{
		p.X: 0, p.Y: 0,
		q.X: -0.02, q.Y: 4.39,
	}

	soln, err := Solve(requests, guesses, gen.Len(), DefaultConfig())
	require.NoError(t, err)
	require.True(t, soln.IsSatisfied())

	vals := soln.FinalValues()
	assert.InDelta(t, 0, vals[p.X], 1e-9)
	assert.InDelta(t, 0, vals[p.Y], 1e-9)
	dist := math.Hypot(vals[q.X]-vals[p.X], vals[q.Y]-vals[p.Y])
	assert.InDelta(t, 4, dist, 1e-9)
}

// Scenario 2: vertical alignment.
func TestVerticalAlignment(t *testing.T) {
	gen := ids.NewGen()
	p := ids.NewPoint(gen)
	q := ids.NewPoint(gen)

	requests := []Request{
		HighestPriorityRequest(constraint.NewFixed(p.X, 0), 0),
		HighestPriorityRequest(constraint.NewFixed(p.Y, 0), 1),
		HighestPriorityRequest(constraint.NewFixed(q.Y, 5), 2),
		NewRequest(constraint.NewVertical(p, q), 0, 3),
	}
	guesses := map[ids.VarID]float64{}

	soln, err := Solve(requests, guesses, gen.Len(), DefaultConfig())
	require.NoError(t, err)
	require.True(t, soln.IsSatisfied())

	vals := soln.FinalValues()
	assert.InDelta(t, 0, vals[q.X], 1e-9)
	assert.InDelta(t, 5, vals[q.Y], 1e-9)
}

// Scenario 3: point on arc, inside span.
func TestPointOnArcInsideSpan(t *testing.T) {
	gen := ids.NewGen()
	center := ids.NewPoint(gen)
	radius := gen.Next()
	pt := ids.NewPoint(gen)
	circle := ids.Circle{Center: center, Radius: radius}

	requests := []Request{
		HighestPriorityRequest(constraint.NewFixed(center.X, 0), 0),
		HighestPriorityRequest(constraint.NewFixed(center.Y, 0), 1),
		HighestPriorityRequest(constraint.NewFixed(radius, 1), 2),
		NewRequest(constraint.NewPointOnArc(pt, circle, 0, math.Pi/2, ids.CCW, 1e-2), 0, 3),
	}
	guesses := map[ids.VarID]float64{pt.X: 0.5, pt.Y: 0.6}

	soln, err := Solve(requests, guesses, gen.Len(), DefaultConfig())
	require.NoError(t, err)
	require.True(t, soln.IsSatisfied())

	vals := soln.FinalValues()
	r := math.Hypot(vals[pt.X], vals[pt.Y])
	assert.InDelta(t, 1, r, 1e-6)
	theta := math.Atan2(vals[pt.Y], vals[pt.X])
	assert.GreaterOrEqual(t, theta, -1e-6)
	assert.LessOrEqual(t, theta, math.Pi/2+1e-6)
}

// Scenario 4: point on arc, outside span. The solver should snap the point
// to whichever endpoint is nearer rather than leaving it off the arc.
func TestPointOnArcOutsideSpanSnapsToNearerEndpoint(t *testing.T) {
	gen := ids.NewGen()
	center := ids.NewPoint(gen)
	radius := gen.Next()
	pt := ids.NewPoint(gen)
	circle := ids.Circle{Center: center, Radius: radius}

	requests := []Request{
		HighestPriorityRequest(constraint.NewFixed(center.X, 0), 0),
		HighestPriorityRequest(constraint.NewFixed(center.Y, 0), 1),
		HighestPriorityRequest(constraint.NewFixed(radius, 1), 2),
		NewRequest(constraint.NewPointOnArc(pt, circle, 0, math.Pi/2, ids.CCW, 1e-2), 0, 3),
	}
	guesses := map[ids.VarID]float64{pt.X: -0.3, pt.Y: -0.4}

	soln, err := Solve(requests, guesses, gen.Len(), DefaultConfig())
	require.NoError(t, err)
	require.True(t, soln.IsSatisfied())

	vals := soln.FinalValues()
	r := math.Hypot(vals[pt.X], vals[pt.Y])
	assert.InDelta(t, 1, r, 1e-6)
	theta := math.Atan2(vals[pt.Y], vals[pt.X])
	atStart := math.Abs(theta-0) < 1e-3
	atEnd := math.Abs(theta-math.Pi/2) < 1e-3
	assert.True(t, atStart || atEnd, "expected point to snap to an arc endpoint, got theta=%v", theta)
}

// Scenario 5: overconstrained, two contradictory Fixed constraints at the
// same priority. One (or both) must be reported unsatisfied.
func TestOverconstrainedFixedContradiction(t *testing.T) {
	gen := ids.NewGen()
	id := gen.Next()

	requests := []Request{
		NewRequest(constraint.NewFixed(id, 0), 5, 0),
		NewRequest(constraint.NewFixed(id, 1), 5, 1),
	}

	soln, err := Solve(requests, nil, gen.Len(), DefaultConfig())
	require.Error(t, err)
	require.NotNil(t, soln)
	assert.False(t, soln.IsSatisfied())
	assert.NotEmpty(t, soln.Unsatisfied())
}

// Priority monotonicity: adding a lower-priority constraint never changes
// which higher-priority constraints end up satisfied.
func TestPriorityMonotonicity(t *testing.T) {
	gen := ids.NewGen()
	p := ids.NewPoint(gen)

	highOnly := []Request{
		HighestPriorityRequest(constraint.NewFixed(p.X, 2), 0),
		HighestPriorityRequest(constraint.NewFixed(p.Y, 3), 1),
	}
	solnHigh, err := Solve(highOnly, nil, gen.Len(), DefaultConfig())
	require.NoError(t, err)
	require.True(t, solnHigh.IsSatisfied())

	withLow := append(append([]Request{}, highOnly...),
		NewRequest(constraint.NewFixed(p.X, 9), 0, 2))
	solnBoth, err := Solve(withLow, nil, gen.Len(), DefaultConfig())
	require.Error(t, err)

	vals := solnBoth.FinalValues()
	assert.InDelta(t, 2, vals[p.X], 1e-6)
	assert.InDelta(t, 3, vals[p.Y], 1e-6)
}

// Fixed-point of a satisfied system: solving from the exact solution
// converges within one iteration.
func TestFixedPointConvergesImmediately(t *testing.T) {
	gen := ids.NewGen()
	p := ids.NewPoint(gen)
	q := ids.NewPoint(gen)

	requests := []Request{
		HighestPriorityRequest(constraint.NewFixed(p.X, 0), 0),
		HighestPriorityRequest(constraint.NewFixed(p.Y, 0), 1),
		NewRequest(constraint.NewDistance(p, q, 5), 0, 2),
	}
	guesses := map[ids.VarID]float64{p.X: 0, p.Y: 0, q.X: 5, q.Y: 0}

	soln, err := Solve(requests, guesses, gen.Len(), DefaultConfig())
	require.NoError(t, err)
	assert.LessOrEqual(t, soln.Iterations(), 1)
	assert.Less(t, soln.ResidualNorm(), DefaultConfig().ToleranceAbs)
}

package bigproblem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ezpz"
)

func TestGenerateDefaultSizeMatchesScenario(t *testing.T) {
	doc, err := Generate(DefaultExtraLines)
	require.NoError(t, err)

	// 1000 points -> 2000 ids (x,y per point)
	require.Equal(t, 2000, doc.NCols())
	// 998 parallel + 999 distance + 3 fixes (p0.x, p0.y, p1.x)
	require.Len(t, doc.Requests, 2000)
}

// TestSolveDefaultSizeConvergesWithinIterationBudget actually runs the
// 1000-point, 2000-constraint chain through the solver, not just the
// generator: the counts-only test above never exercised a single Newton
// iteration at this scale.
func TestSolveDefaultSizeConvergesWithinIterationBudget(t *testing.T) {
	doc, err := Generate(DefaultExtraLines)
	require.NoError(t, err)

	soln, err := ezpz.Solve(doc.Requests, doc.Guesses, doc.NCols(), ezpz.DefaultConfig())
	require.NoError(t, err)
	require.True(t, soln.IsSatisfied())
	require.LessOrEqual(t, soln.Iterations(), 10)
}

func TestGenerateSmallChainParses(t *testing.T) {
	doc, err := Generate(1)
	require.NoError(t, err)
	require.Equal(t, 8, doc.NCols()) // p0, p1, p2, p3 -> 8 ids (x,y per point)
	// 2 parallel + 3 distance + 3 fixes
	require.Len(t, doc.Requests, 8)
}

package maths

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// largeDiagonalSquare builds an n x n diagonally dominant square matrix,
// each row touching its own diagonal plus its two neighbors, along with
// the structural row pattern NewSparseLU needs to build against it. Large
// enough that parallelRowUpdate's n >= 2*limit threshold is crossed once
// InitGlobalParallelism picks more than one worker.
func largeDiagonalSquare(n int) (*RowSparse, [][]int) {
	structRows := make([][]int, n)
	for i := 0; i < n; i++ {
		var cols []int // ascending, as NewRowSparse requires
		if i > 0 {
			cols = append(cols, i-1)
		}
		cols = append(cols, i)
		if i < n-1 {
			cols = append(cols, i+1)
		}
		structRows[i] = cols
	}
	m := NewRowSparse(n, structRows)
	for i := 0; i < n; i++ {
		m.Set(i, i, 4)
		if i > 0 {
			m.Set(i, i-1, 1)
		}
		if i < n-1 {
			m.Set(i, i+1, 1)
		}
	}
	return m, structRows
}

// TestDecomposeParallelPathAllocationIsLinearNotQuadratic exercises the
// same row fan-out Decompose uses once per elimination step, once per
// Newton iteration. Before the worker pool, every step allocated a fresh
// semaphore, waitgroup and one goroutine per remaining row, so a full
// Decompose cost grew with the square of n; the pool fix leaves exactly
// one per-step closure (it captures that step's pivot row, so it cannot
// be reused across steps the way the workers themselves are), so the
// total should scale with n, not n^2. Bounding well under the old
// quadratic cost is what distinguishes a real fix from a cosmetic one.
func TestDecomposeParallelPathAllocationIsLinearNotQuadratic(t *testing.T) {
	InitGlobalParallelism(4)

	const n = 64
	src, structRows := largeDiagonalSquare(n)
	lu := NewSparseLU(n, structRows)

	require.NoError(t, lu.Decompose(src)) // warmup: pool created here

	allocs := testing.AllocsPerRun(20, func() {
		if err := lu.Decompose(src); err != nil {
			t.Fatalf("decompose: %v", err)
		}
	})
	require.LessOrEqual(t, allocs, float64(3*n))
}

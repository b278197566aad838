package maths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 2x3 J, rows<cols (underdetermined): two overlapping rows sharing
// column 1, so JJᵀ has a nonzero off-diagonal cross term.
//
//	J = [1 2 0]
//	    [0 3 1]
func wideJacobian() (*CSCPattern, *JacobianCache) {
	entries := []Entry{
		{Row: 0, Col: 0}, {Row: 0, Col: 1},
		{Row: 1, Col: 1}, {Row: 1, Col: 2},
	}
	pattern := BuildCSCPattern(2, 3, entries)
	jc := NewJacobianCache(pattern)
	jc.AddAt(0, 0, 1)
	jc.AddAt(0, 1, 2)
	jc.AddAt(1, 1, 3)
	jc.AddAt(1, 2, 1)
	return pattern, jc
}

func TestBuildRowSpacePatternMatchesJJT(t *testing.T) {
	pattern, jc := wideJacobian()
	rsp := BuildRowSpacePattern(pattern)
	require.Equal(t, 2, rsp.NRows())

	A := rsp.NewMatrix()
	rsp.Assemble(jc, 0, A)

	// JJᵀ = [[1*1+2*2, 2*3], [2*3, 3*3+1*1]] = [[5,6],[6,10]]
	assert.Equal(t, 5.0, A.Get(0, 0))
	assert.Equal(t, 6.0, A.Get(0, 1))
	assert.Equal(t, 6.0, A.Get(1, 0))
	assert.Equal(t, 10.0, A.Get(1, 1))
}

func TestRowSpacePatternRidgeAddsToDiagonal(t *testing.T) {
	pattern, jc := wideJacobian()
	rsp := BuildRowSpacePattern(pattern)
	A := rsp.NewMatrix()
	rsp.Assemble(jc, 1e-3, A)
	assert.Equal(t, 5.0+1e-3, A.Get(0, 0))
	assert.Equal(t, 10.0+1e-3, A.Get(1, 1))
}

func TestBuildNormalEqPatternMatchesJTJ(t *testing.T) {
	pattern, jc := wideJacobian()
	neq := BuildNormalEqPattern(pattern)
	require.Equal(t, 3, neq.NCols())

	A := neq.NewMatrix()
	neq.Assemble(jc, 0, A)

	// JᵀJ = [[1,2,0],[2,13,3],[0,3,1]]
	assert.Equal(t, 1.0, A.Get(0, 0))
	assert.Equal(t, 2.0, A.Get(0, 1))
	assert.Equal(t, 0.0, A.Get(0, 2))
	assert.Equal(t, 13.0, A.Get(1, 1))
	assert.Equal(t, 3.0, A.Get(1, 2))
	assert.Equal(t, 1.0, A.Get(2, 2))
}

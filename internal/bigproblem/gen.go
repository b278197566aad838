// Package bigproblem builds the large chain-of-parallel-segments system
// used as the stress-test scenario: a zig-zag chain of points held a fixed
// distance apart and pairwise parallel to their neighbors, anchored at one
// end. Ported from the massive_parallel_system test case's generator
// script, originally a print-the-textual-format one-off; here it builds
// the textual form once and hands it to problemfile.Parse, so it stays
// the single source of truth for the grammar instead of drifting from it.
package bigproblem

import (
	"fmt"
	"math"
	"strings"

	"ezpz"
	"ezpz/problemfile"
)

// DefaultExtraLines yields exactly 1000 points and 2000 constraint
// requests (998 parallel + 999 distance + 3 fixes), matching the
// large-random-system scenario's numbers.
const DefaultExtraLines = 997

// segmentLength is the fixed edge length between chain neighbors,
// sqrt(32), same constant the original generator used.
var segmentLength = math.Sqrt(32)

// Text renders the textual problem-file source for a chain of
// extraLines+3 points: p0 anchored at the origin, p1 pinned to x=4, every
// consecutive pair of edges (p_i,p_i+1)-(p_i+1,p_i+2) held parallel, and
// every edge held at segmentLength.
func Text(extraLines int) string {
	var b strings.Builder
	n := extraLines + 3 // total points: p0..p(n-1)

	b.WriteString("# constraints\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "point p%d\n", i)
	}

	b.WriteString("p0.x = 0\np0.y = 0\n")
	fmt.Fprintf(&b, "parallel(p0, p1, p1, p2)\n")
	for i := 1; i <= extraLines; i++ {
		fmt.Fprintf(&b, "parallel(p%d, p%d, p%d, p%d)\n", i, i+1, i+1, i+2)
	}

	fmt.Fprintf(&b, "distance(p0, p1, %s)\n", formatLength())
	fmt.Fprintf(&b, "distance(p1, p2, %s)\n", formatLength())
	for i := 2; i <= extraLines+1; i++ {
		fmt.Fprintf(&b, "distance(p%d, p%d, %s)\n", i, i+1, formatLength())
	}

	b.WriteString("p1.x = 4\n")

	b.WriteString("# guesses\n")
	b.WriteString("p0 roughly (0, 0)\n")
	b.WriteString("p1 roughly (3, 3)\n")
	fmt.Fprintf(&b, "p2 roughly (6, 6)\n")
	for i := 3; i < n; i++ {
		fmt.Fprintf(&b, "p%d roughly (%d, %d)\n", i, 6+i, 6+i)
	}

	return b.String()
}

func formatLength() string {
	return fmt.Sprintf("%g", segmentLength)
}

// Generate parses the generated text into a ready-to-solve Document, so
// callers (this package's tests) never have to go through the text
// themselves; the CLI's gen-big-problem subcommand writes Text instead.
func Generate(extraLines int) (*problemfile.Document, error) {
	return problemfile.Parse(strings.NewReader(Text(extraLines)), ezpz.DefaultConfig().DeadbandArc)
}

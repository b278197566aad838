// Package problemfile reads and writes the textual problem-file format
// documented for round-trip tests: a "# constraints" section declaring
// points and relations among them, and a "# guesses" section giving each
// point an initial position. It is a thin layer around the core solver
// package, grounded in kcl-ezpz's textual frontend.
package problemfile

import (
	"ezpz"
	"ezpz/ids"
)

// Document is a fully parsed problem file: the id allocator's state, every
// named point, the constraint requests ready to hand to ezpz.Solve, and the
// initial guesses keyed by VarID.
type Document struct {
	Gen         *ids.Gen
	Points      map[string]ids.Point
	order       []string // point declaration order, for stable serialization
	Requests    []ezpz.Request
	Guesses     map[ids.VarID]float64
	deadbandArc float64 // passed to every on_arc constraint parsed into this Document
}

// NCols is the number of ids issued while parsing; pass to ezpz.Solve.
func (d *Document) NCols() int {
	return d.Gen.Len()
}

func newDocument(deadbandArc float64) *Document {
	return &Document{
		Gen:         ids.NewGen(),
		Points:      map[string]ids.Point{},
		Guesses:     map[ids.VarID]float64{},
		deadbandArc: deadbandArc,
	}
}

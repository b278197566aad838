package constraint

import "ezpz/ids"

// Parallel forces two lines' direction vectors to be parallel via their
// 2D cross product: f = dx1*dy2 - dy1*dx2.
type Parallel struct {
	Line0, Line1 ids.Line
}

func NewParallel(l0, l1 ids.Line) Parallel { return Parallel{Line0: l0, Line1: l1} }

func (c Parallel) Kind() Kind    { return KindParallel }
func (c Parallel) RowCount() int { return 1 }

func (c Parallel) Nonzeros(dst []ColRef) []ColRef {
	return append(dst,
		ColRef{Row: 0, Col: c.Line0.P0.X}, ColRef{Row: 0, Col: c.Line0.P0.Y},
		ColRef{Row: 0, Col: c.Line0.P1.X}, ColRef{Row: 0, Col: c.Line0.P1.Y},
		ColRef{Row: 0, Col: c.Line1.P0.X}, ColRef{Row: 0, Col: c.Line1.P0.Y},
		ColRef{Row: 0, Col: c.Line1.P1.X}, ColRef{Row: 0, Col: c.Line1.P1.Y})
}

func directions(x []float64, l0, l1 ids.Line) (dx1, dy1, dx2, dy2 float64) {
	dx1 = get(x, l0.P1.X) - get(x, l0.P0.X)
	dy1 = get(x, l0.P1.Y) - get(x, l0.P0.Y)
	dx2 = get(x, l1.P1.X) - get(x, l1.P0.X)
	dy2 = get(x, l1.P1.Y) - get(x, l1.P0.Y)
	return
}

func (c Parallel) Residual(x []float64, out []float64) {
	dx1, dy1, dx2, dy2 := directions(x, c.Line0, c.Line1)
	out[0] = dx1*dy2 - dy1*dx2
}

func (c Parallel) Jacobian(x []float64, out []float64) {
	dx1, dy1, dx2, dy2 := directions(x, c.Line0, c.Line1)
	// f = (p1x-p0x)*(q1y-q0y) - (p1y-p0y)*(q1x-q0x)
	out[0] = -dy2 // d/dp0x
	out[1] = dx2  // d/dp0y
	out[2] = dy2  // d/dp1x
	out[3] = -dx2 // d/dp1y
	out[4] = dy1  // d/dq0x
	out[5] = -dx1 // d/dq0y
	out[6] = -dy1 // d/dq1x
	out[7] = dx1  // d/dq1y
}

// Perpendicular forces two lines' direction vectors to be orthogonal via
// their dot product: f = dx1*dx2 + dy1*dy2.
type Perpendicular struct {
	Line0, Line1 ids.Line
}

func NewPerpendicular(l0, l1 ids.Line) Perpendicular { return Perpendicular{Line0: l0, Line1: l1} }

func (c Perpendicular) Kind() Kind    { return KindPerpendicular }
func (c Perpendicular) RowCount() int { return 1 }

func (c Perpendicular) Nonzeros(dst []ColRef) []ColRef {
	return append(dst,
		ColRef{Row: 0, Col: c.Line0.P0.X}, ColRef{Row: 0, Col: c.Line0.P0.Y},
		ColRef{Row: 0, Col: c.Line0.P1.X}, ColRef{Row: 0, Col: c.Line0.P1.Y},
		ColRef{Row: 0, Col: c.Line1.P0.X}, ColRef{Row: 0, Col: c.Line1.P0.Y},
		ColRef{Row: 0, Col: c.Line1.P1.X}, ColRef{Row: 0, Col: c.Line1.P1.Y})
}

func (c Perpendicular) Residual(x []float64, out []float64) {
	dx1, dy1, dx2, dy2 := directions(x, c.Line0, c.Line1)
	out[0] = dx1*dx2 + dy1*dy2
}

func (c Perpendicular) Jacobian(x []float64, out []float64) {
	dx1, dy1, dx2, dy2 := directions(x, c.Line0, c.Line1)
	// f = (p1x-p0x)*(q1x-q0x) + (p1y-p0y)*(q1y-q0y)
	out[0] = -dx2 // d/dp0x
	out[1] = -dy2 // d/dp0y
	out[2] = dx2  // d/dp1x
	out[3] = dy2  // d/dp1y
	out[4] = -dx1 // d/dq0x
	out[5] = -dy1 // d/dq0y
	out[6] = dx1  // d/dq1x
	out[7] = dy1  // d/dq1y
}

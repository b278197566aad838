package constraint

import (
	"math"

	"ezpz/ids"
)

// PointOnCircle constrains a point to lie on a circle of variable radius:
// f = dist(pt, center) - radius.
type PointOnCircle struct {
	Pt     ids.Point
	Circle ids.Circle
}

func NewPointOnCircle(pt ids.Point, circle ids.Circle) PointOnCircle {
	return PointOnCircle{Pt: pt, Circle: circle}
}

func (c PointOnCircle) Kind() Kind    { return KindPointOnCircle }
func (c PointOnCircle) RowCount() int { return 1 }

func (c PointOnCircle) Nonzeros(dst []ColRef) []ColRef {
	return append(dst,
		ColRef{Row: 0, Col: c.Pt.X}, ColRef{Row: 0, Col: c.Pt.Y},
		ColRef{Row: 0, Col: c.Circle.Center.X}, ColRef{Row: 0, Col: c.Circle.Center.Y},
		ColRef{Row: 0, Col: c.Circle.Radius})
}

// radialGeometry returns the vector from the circle's center to the point,
// its length, and whether that length is degenerate (point on the center).
func radialGeometry(x []float64, pt ids.Point, circle ids.Circle) (dx, dy, dist float64, degenerate bool) {
	dx = get(x, pt.X) - get(x, circle.Center.X)
	dy = get(x, pt.Y) - get(x, circle.Center.Y)
	dist = math.Hypot(dx, dy)
	degenerate = dist < Epsilon
	return
}

func (c PointOnCircle) Residual(x []float64, out []float64) {
	_, _, dist, _ := radialGeometry(x, c.Pt, c.Circle)
	out[0] = dist - get(x, c.Circle.Radius)
}

func (c PointOnCircle) Jacobian(x []float64, out []float64) {
	dx, dy, dist, degenerate := radialGeometry(x, c.Pt, c.Circle)
	if degenerate {
		out[0], out[1], out[2], out[3], out[4] = 0, 0, 0, 0, -1
		return
	}
	out[0] = dx / dist  // d/dpx
	out[1] = dy / dist  // d/dpy
	out[2] = -dx / dist // d/dcx
	out[3] = -dy / dist // d/dcy
	out[4] = -1          // d/dradius
}

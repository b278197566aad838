package constraint

import (
	"math"

	"ezpz/ids"
)

// Epsilon guards every divisor in the constraint library: a distance below
// it is treated as degenerate and its gradient is reported as zero rather
// than divided through, matching spec's "use a subgradient of zero and
// rely on damping to escape" guidance.
const Epsilon = 1e-9

// Distance constrains the Euclidean distance between two points to a
// target value: f = dist(p, q) - d.
type Distance struct {
	P, Q   ids.Point
	Target float64
}

func NewDistance(p, q ids.Point, target float64) Distance {
	return Distance{P: p, Q: q, Target: target}
}

func (c Distance) Kind() Kind    { return KindDistance }
func (c Distance) RowCount() int { return 1 }

func (c Distance) Nonzeros(dst []ColRef) []ColRef {
	return append(dst,
		ColRef{Row: 0, Col: c.P.X}, ColRef{Row: 0, Col: c.P.Y},
		ColRef{Row: 0, Col: c.Q.X}, ColRef{Row: 0, Col: c.Q.Y})
}

func (c Distance) dxdy(x []float64) (dx, dy, dist float64) {
	dx = get(x, c.Q.X) - get(x, c.P.X)
	dy = get(x, c.Q.Y) - get(x, c.P.Y)
	dist = math.Hypot(dx, dy)
	return
}

func (c Distance) Residual(x []float64, out []float64) {
	_, _, dist := c.dxdy(x)
	out[0] = dist - c.Target
}

func (c Distance) Jacobian(x []float64, out []float64) {
	dx, dy, dist := c.dxdy(x)
	if dist < Epsilon {
		out[0], out[1], out[2], out[3] = 0, 0, 0, 0
		return
	}
	out[0] = -dx / dist // d/dpx
	out[1] = -dy / dist // d/dpy
	out[2] = dx / dist  // d/dqx
	out[3] = dy / dist  // d/dqy
}

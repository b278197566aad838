package constraint

import (
	"math"

	"ezpz/ids"
)

// PointOnArc constrains a point to lie on one particular span of a circle,
// not the full circle. It contributes three rows: circle membership
// (identical to PointOnCircle) and two one-sided angular penalties, one at
// each end of the span, that only activate once the point's angle strays
// past that endpoint in the direction forbidden by the arc's orientation.
//
// The angular rows are disabled (forced to zero, value and Jacobian alike)
// while the point is farther than DeadbandArc from the circle: close to
// the center, atan2 is numerically meaningless and would otherwise pull
// the point around the circle on a spurious gradient before the radial
// error has even converged.
type PointOnArc struct {
	Pt          ids.Point
	Circle      ids.Circle
	StartAngle  float64
	EndAngle    float64
	Orient      ids.Orientation
	DeadbandArc float64
}

func NewPointOnArc(pt ids.Point, circle ids.Circle, startAngle, endAngle float64, orient ids.Orientation, deadbandArc float64) PointOnArc {
	return PointOnArc{Pt: pt, Circle: circle, StartAngle: startAngle, EndAngle: endAngle, Orient: orient, DeadbandArc: deadbandArc}
}

func (c PointOnArc) Kind() Kind    { return KindPointOnArc }
func (c PointOnArc) RowCount() int { return 3 }

func (c PointOnArc) Nonzeros(dst []ColRef) []ColRef {
	dst = append(dst,
		ColRef{Row: 0, Col: c.Pt.X}, ColRef{Row: 0, Col: c.Pt.Y},
		ColRef{Row: 0, Col: c.Circle.Center.X}, ColRef{Row: 0, Col: c.Circle.Center.Y},
		ColRef{Row: 0, Col: c.Circle.Radius})
	dst = append(dst,
		ColRef{Row: 1, Col: c.Pt.X}, ColRef{Row: 1, Col: c.Pt.Y},
		ColRef{Row: 1, Col: c.Circle.Center.X}, ColRef{Row: 1, Col: c.Circle.Center.Y})
	dst = append(dst,
		ColRef{Row: 2, Col: c.Pt.X}, ColRef{Row: 2, Col: c.Pt.Y},
		ColRef{Row: 2, Col: c.Circle.Center.X}, ColRef{Row: 2, Col: c.Circle.Center.Y})
	return dst
}

// wrapPi folds an angle into [-pi, pi).
func wrapPi(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// angularGeometry returns the point's angle around the circle's center,
// and the gradient of that angle with respect to (px, py, cx, cy).
func angularGeometry(x []float64, pt ids.Point, circle ids.Circle) (theta, dThetaDpx, dThetaDpy, dThetaDcx, dThetaDcy float64, degenerate bool) {
	dx := get(x, pt.X) - get(x, circle.Center.X)
	dy := get(x, pt.Y) - get(x, circle.Center.Y)
	r2 := dx*dx + dy*dy
	if r2 < Epsilon*Epsilon {
		return 0, 0, 0, 0, 0, true
	}
	theta = math.Atan2(dy, dx)
	dThetaDpx = -dy / r2
	dThetaDpy = dx / r2
	dThetaDcx = dy / r2
	dThetaDcy = -dx / r2
	return
}

// excursions returns the one-sided start/end penalties and a sign each
// carries with respect to theta, so the Jacobian can apply the chain rule
// without recomputing the hinge logic.
func (c PointOnArc) excursions(theta float64) (startVal, startSign, endVal, endSign float64) {
	relStart := wrapPi(theta - c.StartAngle)
	relEnd := wrapPi(theta - c.EndAngle)
	if c.Orient == ids.CCW {
		if relStart < 0 {
			startVal, startSign = -relStart, -1
		}
		if relEnd > 0 {
			endVal, endSign = relEnd, 1
		}
	} else {
		if relStart > 0 {
			startVal, startSign = relStart, 1
		}
		if relEnd < 0 {
			endVal, endSign = -relEnd, -1
		}
	}
	if startVal > 0 && endVal > 0 {
		// Far interior of the forbidden arc: both one-sided bounds see a
		// violation at once. Penalizing both together has a stable
		// equilibrium at the forbidden arc's midpoint, not at either
		// endpoint, so only the nearer bound stays active and the step
		// pulls straight toward it instead of stalling between the two.
		if startVal <= endVal {
			endVal, endSign = 0, 0
		} else {
			startVal, startSign = 0, 0
		}
	}
	return
}

func (c PointOnArc) Residual(x []float64, out []float64) {
	_, _, dist, _ := radialGeometry(x, c.Pt, c.Circle)
	out[0] = dist - get(x, c.Circle.Radius)

	if math.Abs(out[0]) > c.DeadbandArc {
		out[1], out[2] = 0, 0
		return
	}
	theta, _, _, _, _, degenerate := angularGeometry(x, c.Pt, c.Circle)
	if degenerate {
		out[1], out[2] = 0, 0
		return
	}
	startVal, _, endVal, _ := c.excursions(theta)
	out[1] = startVal
	out[2] = endVal
}

func (c PointOnArc) Jacobian(x []float64, out []float64) {
	dx, dy, dist, radDeg := radialGeometry(x, c.Pt, c.Circle)
	rho := dist - get(x, c.Circle.Radius)
	if radDeg {
		out[0], out[1], out[2], out[3], out[4] = 0, 0, 0, 0, -1
	} else {
		out[0] = dx / dist
		out[1] = dy / dist
		out[2] = -dx / dist
		out[3] = -dy / dist
		out[4] = -1
	}

	if math.Abs(rho) > c.DeadbandArc {
		out[5], out[6], out[7], out[8] = 0, 0, 0, 0
		out[9], out[10], out[11], out[12] = 0, 0, 0, 0
		return
	}

	theta, dTpx, dTpy, dTcx, dTcy, degenerate := angularGeometry(x, c.Pt, c.Circle)
	if degenerate {
		out[5], out[6], out[7], out[8] = 0, 0, 0, 0
		out[9], out[10], out[11], out[12] = 0, 0, 0, 0
		return
	}
	_, startSign, _, endSign := c.excursions(theta)

	out[5] = startSign * dTpx
	out[6] = startSign * dTpy
	out[7] = startSign * dTcx
	out[8] = startSign * dTcy

	out[9] = endSign * dTpx
	out[10] = endSign * dTpy
	out[11] = endSign * dTcx
	out[12] = endSign * dTcy
}

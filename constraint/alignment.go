package constraint

import "ezpz/ids"

// Horizontal forces two points to share a y coordinate: f = py - qy.
type Horizontal struct {
	P, Q ids.Point
}

func NewHorizontal(p, q ids.Point) Horizontal { return Horizontal{P: p, Q: q} }

func (c Horizontal) Kind() Kind    { return KindHorizontal }
func (c Horizontal) RowCount() int { return 1 }

func (c Horizontal) Nonzeros(dst []ColRef) []ColRef {
	return append(dst, ColRef{Row: 0, Col: c.P.Y}, ColRef{Row: 0, Col: c.Q.Y})
}

func (c Horizontal) Residual(x []float64, out []float64) {
	out[0] = get(x, c.P.Y) - get(x, c.Q.Y)
}

func (c Horizontal) Jacobian(x []float64, out []float64) {
	out[0], out[1] = 1, -1
}

// Vertical forces two points to share an x coordinate: f = px - qx.
type Vertical struct {
	P, Q ids.Point
}

func NewVertical(p, q ids.Point) Vertical { return Vertical{P: p, Q: q} }

func (c Vertical) Kind() Kind    { return KindVertical }
func (c Vertical) RowCount() int { return 1 }

func (c Vertical) Nonzeros(dst []ColRef) []ColRef {
	return append(dst, ColRef{Row: 0, Col: c.P.X}, ColRef{Row: 0, Col: c.Q.X})
}

func (c Vertical) Residual(x []float64, out []float64) {
	out[0] = get(x, c.P.X) - get(x, c.Q.X)
}

func (c Vertical) Jacobian(x []float64, out []float64) {
	out[0], out[1] = 1, -1
}

// Coincident forces two points to the same location: two rows, x then y.
type Coincident struct {
	P, Q ids.Point
}

func NewCoincident(p, q ids.Point) Coincident { return Coincident{P: p, Q: q} }

func (c Coincident) Kind() Kind    { return KindCoincident }
func (c Coincident) RowCount() int { return 2 }

func (c Coincident) Nonzeros(dst []ColRef) []ColRef {
	return append(dst,
		ColRef{Row: 0, Col: c.P.X}, ColRef{Row: 0, Col: c.Q.X},
		ColRef{Row: 1, Col: c.P.Y}, ColRef{Row: 1, Col: c.Q.Y})
}

func (c Coincident) Residual(x []float64, out []float64) {
	out[0] = get(x, c.P.X) - get(x, c.Q.X)
	out[1] = get(x, c.P.Y) - get(x, c.Q.Y)
}

func (c Coincident) Jacobian(x []float64, out []float64) {
	out[0], out[1] = 1, -1
	out[2], out[3] = 1, -1
}

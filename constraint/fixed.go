package constraint

import "ezpz/ids"

// Fixed pins a single scalar variable to a target value: f = X[id] - v.
type Fixed struct {
	ID     ids.VarID
	Target float64
}

func NewFixed(id ids.VarID, target float64) Fixed {
	return Fixed{ID: id, Target: target}
}

func (c Fixed) Kind() Kind     { return KindFixed }
func (c Fixed) RowCount() int  { return 1 }

func (c Fixed) Nonzeros(dst []ColRef) []ColRef {
	return append(dst, ColRef{Row: 0, Col: c.ID})
}

func (c Fixed) Residual(x []float64, out []float64) {
	out[0] = get(x, c.ID) - c.Target
}

func (c Fixed) Jacobian(x []float64, out []float64) {
	out[0] = 1
}

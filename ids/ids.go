// Package ids allocates and composes the variable identities that a sketch
// is built from: one dense integer per scalar unknown (a point's x or y, a
// circle's radius), and the small composite shapes (points, circles, arcs)
// that constraints refer to.
package ids

// VarID is a dense, non-negative, monotonically-issued variable id. Two ids
// per point (x, y); one id per free scalar such as a circle's radius.
type VarID int

// Gen is a monotonic id allocator. Ids it hands out are stable for the
// lifetime of one solve session.
type Gen struct {
	next VarID
}

// NewGen returns a fresh allocator starting at id 0.
func NewGen() *Gen {
	return &Gen{}
}

// Next issues and returns the next unused id.
func (g *Gen) Next() VarID {
	id := g.next
	g.next++
	return id
}

// Len reports how many ids have been issued so far; callers use it to size
// the value vector X.
func (g *Gen) Len() int {
	return int(g.next)
}

// Point is a logical 2D point: a pair of ids, not a coordinate storage.
type Point struct {
	X, Y VarID
}

// NewPoint allocates a fresh point (two ids: x then y).
func NewPoint(g *Gen) Point {
	return Point{X: g.Next(), Y: g.Next()}
}

// Line is two points taken as the endpoints of a directed segment.
type Line struct {
	P0, P1 Point
}

// Circle is a center point plus a radius id (the radius is itself a
// variable, not a fixed constant, so PointOnCircle/PointOnArc can appear
// alongside a CircleRadius-style fix elsewhere in the tier).
type Circle struct {
	Center Point
	Radius VarID
}

// Orientation is the sweep direction of an arc, from its start angle to its
// end angle.
type Orientation int

const (
	CCW Orientation = iota
	CW
)

// Arc is a circle plus the angular span (in radians, fixed parameters of
// the constraint, not solved-for variables) and its sweep orientation.
type Arc struct {
	Circle     Circle
	StartAngle float64
	EndAngle   float64
	Orient     Orientation
}

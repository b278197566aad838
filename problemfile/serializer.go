package problemfile

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"ezpz/constraint"
	"ezpz/ids"
)

// Write serializes a Document back to the textual format, in point
// declaration order, so Parse(Write(doc)) round-trips.
func Write(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, "# constraints\n"); err != nil {
		return err
	}
	for _, name := range doc.order {
		if _, err := fmt.Fprintf(w, "point %s\n", name); err != nil {
			return err
		}
	}
	nameOf := invertPoints(doc.Points)
	for _, req := range doc.Requests {
		line, ok := formatConstraint(req.Constraint, nameOf, doc.Guesses)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "# guesses\n"); err != nil {
		return err
	}
	for _, name := range doc.order {
		p := doc.Points[name]
		fx, fy := doc.Guesses[p.X], doc.Guesses[p.Y]
		if _, err := fmt.Fprintf(w, "%s roughly (%s, %s)\n", name, formatFloat(fx), formatFloat(fy)); err != nil {
			return err
		}
	}
	return nil
}

func invertPoints(points map[string]ids.Point) map[ids.VarID]string {
	out := make(map[ids.VarID]string, len(points)*2)
	for name, p := range points {
		out[p.X] = name + ".x"
		out[p.Y] = name + ".y"
	}
	return out
}

func pointName(nameOf map[ids.VarID]string, p ids.Point) string {
	full, ok := nameOf[p.X]
	if !ok {
		return "?"
	}
	// strip the ".x" suffix added by invertPoints
	return full[:len(full)-2]
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatConstraint renders one constraint back to its source form. Fixed
// constraints pinning an implicitly-allocated radius scalar (not a named
// point component) are not round-tripped as standalone statements: they
// are folded back into the on_circle/on_arc statement that created them by
// the caller, so this only handles the point.x/point.y spelling.
func formatConstraint(c constraint.Constraint, nameOf map[ids.VarID]string, guesses map[ids.VarID]float64) (string, bool) {
	switch v := c.(type) {
	case constraint.Fixed:
		name, ok := nameOf[v.ID]
		if !ok {
			// An implicitly-allocated radius scalar from on_circle/on_arc:
			// folded into that statement instead of round-tripped on its own.
			return "", false
		}
		return fmt.Sprintf("%s = %s", name, formatFloat(v.Target)), true
	case constraint.Horizontal:
		return fmt.Sprintf("horizontal(%s, %s)", pointName(nameOf, v.P), pointName(nameOf, v.Q)), true
	case constraint.Vertical:
		return fmt.Sprintf("vertical(%s, %s)", pointName(nameOf, v.P), pointName(nameOf, v.Q)), true
	case constraint.Coincident:
		return fmt.Sprintf("coincident(%s, %s)", pointName(nameOf, v.P), pointName(nameOf, v.Q)), true
	case constraint.Distance:
		return fmt.Sprintf("distance(%s, %s, %s)", pointName(nameOf, v.P), pointName(nameOf, v.Q), formatFloat(v.Target)), true
	case constraint.Parallel:
		return fmt.Sprintf("parallel(%s, %s, %s, %s)",
			pointName(nameOf, v.Line0.P0), pointName(nameOf, v.Line0.P1),
			pointName(nameOf, v.Line1.P0), pointName(nameOf, v.Line1.P1)), true
	case constraint.Perpendicular:
		return fmt.Sprintf("perpendicular(%s, %s, %s, %s)",
			pointName(nameOf, v.Line0.P0), pointName(nameOf, v.Line0.P1),
			pointName(nameOf, v.Line1.P0), pointName(nameOf, v.Line1.P1)), true
	case constraint.PointOnCircle:
		r := guesses[v.Circle.Radius]
		return fmt.Sprintf("on_circle(%s, %s, %s)", pointName(nameOf, v.Pt), pointName(nameOf, v.Circle.Center), formatFloat(r)), true
	case constraint.PointOnArc:
		r := guesses[v.Circle.Radius]
		dir := "ccw"
		if v.Orient == ids.CW {
			dir = "cw"
		}
		return fmt.Sprintf("on_arc(%s, %s, %s, %s, %s, %s)",
			pointName(nameOf, v.Pt), pointName(nameOf, v.Circle.Center), formatFloat(r),
			formatFloat(v.StartAngle), formatFloat(v.EndAngle), dir), true
	default:
		return "", false
	}
}

// SortedNames returns a Document's declared point names in a stable,
// alphabetic order, useful for diagnostics printing.
func SortedNames(doc *Document) []string {
	names := append([]string{}, doc.order...)
	sort.Strings(names)
	return names
}

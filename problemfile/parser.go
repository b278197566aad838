package problemfile

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"ezpz"
	"ezpz/constraint"
	"ezpz/ids"
)

const (
	sectionNone        = ""
	sectionConstraints = "constraints"
	sectionGuesses     = "guesses"
)

var (
	rePoint         = regexp.MustCompile(`^point\s+(\w+)$`)
	reFixComponent  = regexp.MustCompile(`^(\w+)\.(x|y)\s*=\s*(` + floatPattern + `)$`)
	reHorizontal    = regexp.MustCompile(`^horizontal\(\s*(\w+)\s*,\s*(\w+)\s*\)$`)
	reVertical      = regexp.MustCompile(`^vertical\(\s*(\w+)\s*,\s*(\w+)\s*\)$`)
	reCoincident    = regexp.MustCompile(`^coincident\(\s*(\w+)\s*,\s*(\w+)\s*\)$`)
	reDistance      = regexp.MustCompile(`^distance\(\s*(\w+)\s*,\s*(\w+)\s*,\s*(` + floatPattern + `)\s*\)$`)
	reParallel      = regexp.MustCompile(`^parallel\(\s*(\w+)\s*,\s*(\w+)\s*,\s*(\w+)\s*,\s*(\w+)\s*\)$`)
	rePerpendicular = regexp.MustCompile(`^perpendicular\(\s*(\w+)\s*,\s*(\w+)\s*,\s*(\w+)\s*,\s*(\w+)\s*\)$`)
	reOnCircle      = regexp.MustCompile(`^on_circle\(\s*(\w+)\s*,\s*(\w+)\s*,\s*(` + floatPattern + `)\s*\)$`)
	reOnArc         = regexp.MustCompile(`^on_arc\(\s*(\w+)\s*,\s*(\w+)\s*,\s*(` + floatPattern + `)\s*,\s*(` + floatPattern + `)\s*,\s*(` + floatPattern + `)\s*,\s*(ccw|cw)\s*\)$`)
	reGuess         = regexp.MustCompile(`^(\w+)\s+roughly\s*\(\s*(` + floatPattern + `)\s*,\s*(` + floatPattern + `)\s*\)$`)
)

const floatPattern = `-?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`

// Parse reads a textual problem file and returns a ready-to-solve Document.
// deadbandArc is carried into every on_arc constraint parsed from r; pass
// the same value as the Config the Document will eventually be solved
// with (Config.DeadbandArc), so the textual front end's arcs enforce their
// span the same way a hand-built PointOnArc does.
func Parse(r io.Reader, deadbandArc float64) (*Document, error) {
	doc := newDocument(deadbandArc)
	section := sectionNone
	reqIndex := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "#") {
			heading := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			switch heading {
			case sectionConstraints:
				section = sectionConstraints
			case sectionGuesses:
				section = sectionGuesses
			default:
				return nil, &ezpz.ParseError{Line: lineNo, Message: "unknown section heading: " + heading}
			}
			continue
		}

		var err error
		switch section {
		case sectionConstraints:
			reqIndex, err = doc.parseConstraintLine(line, reqIndex)
		case sectionGuesses:
			err = doc.parseGuessLine(line)
		default:
			err = &ezpz.ParseError{Line: lineNo, Message: "statement outside any section"}
		}
		if err != nil {
			if pe, ok := err.(*ezpz.ParseError); ok && pe.Line == 0 {
				pe.Line = lineNo
			}
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) point(name string) (ids.Point, bool) {
	p, ok := d.Points[name]
	return p, ok
}

func (d *Document) namedPoint(name string) (ids.Point, error) {
	p, ok := d.point(name)
	if !ok {
		return ids.Point{}, &ezpz.ParseError{Message: "reference to undeclared point " + name}
	}
	return p, nil
}

// fixedScalar allocates a fresh scalar id and emits a Fixed request pinning
// it to v, in the highest-priority tier: radii written as literals in the
// textual format are constants, not free variables, but still flow through
// the same Fixed machinery every other constant does.
func (d *Document) fixedScalar(v float64, reqIndex *int) ids.VarID {
	id := d.Gen.Next()
	d.Requests = append(d.Requests, ezpz.HighestPriorityRequest(constraint.NewFixed(id, v), *reqIndex))
	*reqIndex++
	d.Guesses[id] = v
	return id
}

func (d *Document) parseConstraintLine(line string, reqIndex int) (int, error) {
	if m := rePoint.FindStringSubmatch(line); m != nil {
		name := m[1]
		if _, exists := d.Points[name]; exists {
			return reqIndex, &ezpz.ParseError{Message: "point redeclared: " + name}
		}
		d.Points[name] = ids.NewPoint(d.Gen)
		d.order = append(d.order, name)
		return reqIndex, nil
	}

	if m := reFixComponent.FindStringSubmatch(line); m != nil {
		p, err := d.namedPoint(m[1])
		if err != nil {
			return reqIndex, err
		}
		v, _ := strconv.ParseFloat(m[3], 64)
		id := p.X
		if m[2] == "y" {
			id = p.Y
		}
		d.Requests = append(d.Requests, ezpz.NewRequest(constraint.NewFixed(id, v), 0, reqIndex))
		reqIndex++
		return reqIndex, nil
	}

	if m := reHorizontal.FindStringSubmatch(line); m != nil {
		a, err := d.namedPoint(m[1])
		if err != nil {
			return reqIndex, err
		}
		b, err := d.namedPoint(m[2])
		if err != nil {
			return reqIndex, err
		}
		d.Requests = append(d.Requests, ezpz.NewRequest(constraint.NewHorizontal(a, b), 0, reqIndex))
		reqIndex++
		return reqIndex, nil
	}

	if m := reVertical.FindStringSubmatch(line); m != nil {
		a, err := d.namedPoint(m[1])
		if err != nil {
			return reqIndex, err
		}
		b, err := d.namedPoint(m[2])
		if err != nil {
			return reqIndex, err
		}
		d.Requests = append(d.Requests, ezpz.NewRequest(constraint.NewVertical(a, b), 0, reqIndex))
		reqIndex++
		return reqIndex, nil
	}

	if m := reCoincident.FindStringSubmatch(line); m != nil {
		a, err := d.namedPoint(m[1])
		if err != nil {
			return reqIndex, err
		}
		b, err := d.namedPoint(m[2])
		if err != nil {
			return reqIndex, err
		}
		d.Requests = append(d.Requests, ezpz.NewRequest(constraint.NewCoincident(a, b), 0, reqIndex))
		reqIndex++
		return reqIndex, nil
	}

	if m := reDistance.FindStringSubmatch(line); m != nil {
		a, err := d.namedPoint(m[1])
		if err != nil {
			return reqIndex, err
		}
		b, err := d.namedPoint(m[2])
		if err != nil {
			return reqIndex, err
		}
		dist, _ := strconv.ParseFloat(m[3], 64)
		d.Requests = append(d.Requests, ezpz.NewRequest(constraint.NewDistance(a, b, dist), 0, reqIndex))
		reqIndex++
		return reqIndex, nil
	}

	if m := reParallel.FindStringSubmatch(line); m != nil {
		p0, err := d.namedPoint(m[1])
		if err != nil {
			return reqIndex, err
		}
		p1, err := d.namedPoint(m[2])
		if err != nil {
			return reqIndex, err
		}
		p2, err := d.namedPoint(m[3])
		if err != nil {
			return reqIndex, err
		}
		p3, err := d.namedPoint(m[4])
		if err != nil {
			return reqIndex, err
		}
		l0 := ids.Line{P0: p0, P1: p1}
		l1 := ids.Line{P0: p2, P1: p3}
		d.Requests = append(d.Requests, ezpz.NewRequest(constraint.NewParallel(l0, l1), 0, reqIndex))
		reqIndex++
		return reqIndex, nil
	}

	if m := rePerpendicular.FindStringSubmatch(line); m != nil {
		p0, err := d.namedPoint(m[1])
		if err != nil {
			return reqIndex, err
		}
		p1, err := d.namedPoint(m[2])
		if err != nil {
			return reqIndex, err
		}
		p2, err := d.namedPoint(m[3])
		if err != nil {
			return reqIndex, err
		}
		p3, err := d.namedPoint(m[4])
		if err != nil {
			return reqIndex, err
		}
		l0 := ids.Line{P0: p0, P1: p1}
		l1 := ids.Line{P0: p2, P1: p3}
		d.Requests = append(d.Requests, ezpz.NewRequest(constraint.NewPerpendicular(l0, l1), 0, reqIndex))
		reqIndex++
		return reqIndex, nil
	}

	if m := reOnCircle.FindStringSubmatch(line); m != nil {
		p, err := d.namedPoint(m[1])
		if err != nil {
			return reqIndex, err
		}
		c, err := d.namedPoint(m[2])
		if err != nil {
			return reqIndex, err
		}
		r, _ := strconv.ParseFloat(m[3], 64)
		radiusID := d.fixedScalar(r, &reqIndex)
		circle := ids.Circle{Center: c, Radius: radiusID}
		d.Requests = append(d.Requests, ezpz.NewRequest(constraint.NewPointOnCircle(p, circle), 0, reqIndex))
		reqIndex++
		return reqIndex, nil
	}

	if m := reOnArc.FindStringSubmatch(line); m != nil {
		p, err := d.namedPoint(m[1])
		if err != nil {
			return reqIndex, err
		}
		c, err := d.namedPoint(m[2])
		if err != nil {
			return reqIndex, err
		}
		r, _ := strconv.ParseFloat(m[3], 64)
		start, _ := strconv.ParseFloat(m[4], 64)
		end, _ := strconv.ParseFloat(m[5], 64)
		orient := ids.CCW
		if m[6] == "cw" {
			orient = ids.CW
		}
		radiusID := d.fixedScalar(r, &reqIndex)
		circle := ids.Circle{Center: c, Radius: radiusID}
		arc := constraint.NewPointOnArc(p, circle, start, end, orient, d.deadbandArc)
		d.Requests = append(d.Requests, ezpz.NewRequest(arc, 0, reqIndex))
		reqIndex++
		return reqIndex, nil
	}

	return reqIndex, &ezpz.ParseError{Message: "unrecognized statement: " + line}
}

func (d *Document) parseGuessLine(line string) error {
	m := reGuess.FindStringSubmatch(line)
	if m == nil {
		return &ezpz.ParseError{Message: "unrecognized guess statement: " + line}
	}
	p, err := d.namedPoint(m[1])
	if err != nil {
		return err
	}
	fx, _ := strconv.ParseFloat(m[2], 64)
	fy, _ := strconv.ParseFloat(m[3], 64)
	d.Guesses[p.X] = fx
	d.Guesses[p.Y] = fy
	return nil
}

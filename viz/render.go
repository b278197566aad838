package viz

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// arcSamples is how many segments a circle/arc outline is approximated
// with when turned into a plotter.Line.
const arcSamples = 96

// RenderPNG draws a Scene's points, segments, circles and arcs to a PNG
// file of the given pixel dimensions.
func RenderPNG(scene Scene, path string, widthPx, heightPx int) error {
	p := plot.New()
	p.Title.Text = "ezpz solution"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for _, seg := range scene.Segments {
		line, err := plotter.NewLine(plotter.XYs{
			{X: seg.A.X, Y: seg.A.Y},
			{X: seg.B.X, Y: seg.B.Y},
		})
		if err != nil {
			return errors.Wrap(err, "viz: building segment line")
		}
		p.Add(line)
	}

	for _, c := range scene.Circles {
		line, err := plotter.NewLine(circlePoints(c.Center, c.Radius, 0, 2*math.Pi))
		if err != nil {
			return errors.Wrap(err, "viz: building circle outline")
		}
		p.Add(line)
	}

	for _, a := range scene.Arcs {
		start, end := a.StartAngle, a.EndAngle
		if !a.CCW {
			start, end = end, start
		}
		line, err := plotter.NewLine(circlePoints(a.Circle.Center, a.Circle.Radius, start, end))
		if err != nil {
			return errors.Wrap(err, "viz: building arc outline")
		}
		p.Add(line)
	}

	if len(scene.Points) > 0 {
		xys := make(plotter.XYs, len(scene.Points))
		for i, pt := range scene.Points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return errors.Wrap(err, "viz: building point scatter")
		}
		p.Add(scatter)

		if xyl := pointLabels(scene.Points); len(xyl.Labels) > 0 {
			labels, err := plotter.NewLabels(xyl)
			if err != nil {
				return errors.Wrap(err, "viz: building point labels")
			}
			p.Add(labels)
		}
	}

	width := vg.Length(widthPx) * vg.Inch / 96
	height := vg.Length(heightPx) * vg.Inch / 96
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrap(err, "viz: saving PNG")
	}
	return nil
}

func circlePoints(center Point, radius, from, to float64) plotter.XYs {
	if to < from {
		to += 2 * math.Pi
	}
	pts := make(plotter.XYs, arcSamples+1)
	for i := 0; i <= arcSamples; i++ {
		t := from + (to-from)*float64(i)/float64(arcSamples)
		pts[i] = plotter.XY{
			X: center.X + radius*math.Cos(t),
			Y: center.Y + radius*math.Sin(t),
		}
	}
	return pts
}

func pointLabels(points []Point) plotter.XYLabels {
	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, len(points)),
		Labels: make([]string, 0, len(points)),
	}
	for _, pt := range points {
		if pt.Label == "" {
			continue
		}
		labels.XYs = append(labels.XYs, plotter.XY{X: pt.X, Y: pt.Y})
		labels.Labels = append(labels.Labels, pt.Label)
	}
	return labels
}

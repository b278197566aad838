package viz

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// residualGrid samples a scalar field (typically a constraint's residual
// magnitude) over a rectangular region, for plotter.NewHeatMap.
type residualGrid struct {
	nx, ny                 int
	xmin, xmax, ymin, ymax float64
	values                 []float64
}

func (g *residualGrid) Dims() (c, r int) { return g.nx, g.ny }

func (g *residualGrid) X(c int) float64 {
	if g.nx == 1 {
		return g.xmin
	}
	return g.xmin + (g.xmax-g.xmin)*float64(c)/float64(g.nx-1)
}

func (g *residualGrid) Y(r int) float64 {
	if g.ny == 1 {
		return g.ymin
	}
	return g.ymin + (g.ymax-g.ymin)*float64(r)/float64(g.ny-1)
}

func (g *residualGrid) Z(c, r int) float64 { return g.values[r*g.nx+c] }

// RenderResidualHeatmap samples field over [xmin,xmax]x[ymin,ymax] on an
// nx-by-ny grid and renders it as a heatmap, the Go analogue of
// kcl-ezpz's residual_viz: visualizing how a single constraint's residual
// varies as one point sweeps the plane while the rest of the sketch holds
// still.
func RenderResidualHeatmap(field func(x, y float64) float64, xmin, xmax, ymin, ymax float64, nx, ny int, path string, widthPx, heightPx int) error {
	grid := &residualGrid{nx: nx, ny: ny, xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax, values: make([]float64, nx*ny)}
	for r := 0; r < ny; r++ {
		y := grid.Y(r)
		for c := 0; c < nx; c++ {
			grid.values[r*nx+c] = field(grid.X(c), y)
		}
	}

	p := plot.New()
	p.Title.Text = "residual field"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	heat := plotter.NewHeatMap(grid, palette.Heat(24, 1.0))
	p.Add(heat)

	width := vg.Length(widthPx) * vg.Inch / 96
	height := vg.Length(heightPx) * vg.Inch / 96
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrap(err, "viz: saving residual heatmap PNG")
	}
	return nil
}

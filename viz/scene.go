// Package viz renders a solved sketch to a PNG, the way kcl-ezpz's
// residual_viz module turns a Solution into a picture: points, the
// segments/circles/arcs built from them, and optionally a residual-field
// heatmap over the plane.
package viz

// Point is one plotted location, with an optional label drawn beside it.
type Point struct {
	X, Y  float64
	Label string
}

// Segment is a straight line drawn between two points (e.g. the two ends
// of a Horizontal/Vertical/Parallel/Perpendicular/Distance constraint).
type Segment struct {
	A, B Point
}

// Circle is drawn as its full outline.
type Circle struct {
	Center Point
	Radius float64
}

// Arc is drawn as only the swept portion of its circle, from StartAngle to
// EndAngle in the direction CCW indicates.
type Arc struct {
	Circle     Circle
	StartAngle float64
	EndAngle   float64
	CCW        bool
}

// Scene is everything RenderPNG draws for one solved sketch.
type Scene struct {
	Points   []Point
	Segments []Segment
	Circles  []Circle
	Arcs     []Arc
}

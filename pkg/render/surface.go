package render

import (
	"image/color"

	"github.com/matzehuels/repograph/pkg/graph"
)

// Surface is a 2D drawing target. Coordinates passed to drawing calls are
// transformed by the current Translate/Scale state; Push and Pop save and
// restore that state. Clear ignores the transform and paints the whole
// surface.
type Surface interface {
	// Size returns the backing size in pixels.
	Size() (width, height float64)
	Clear(c color.Color)

	Push()
	Pop()
	Translate(dx, dy float64)
	Scale(s float64)

	Line(a, b graph.Point, p Paint)
	Polygon(pts []graph.Point, p Paint)
	Circle(center graph.Point, r float64, p Paint)
	Rect(x, y, w, h float64, p Paint)

	// Text draws s centred horizontally and vertically on at.
	Text(s string, at graph.Point, f Font, c color.Color)
	// MeasureText returns the advance width of s in untransformed units.
	MeasureText(s string, f Font) float64
}

// Paint describes how a shape is filled and outlined. A nil Fill or Stroke
// skips that pass. Glow draws a soft halo of the given radius behind the
// shape.
type Paint struct {
	Fill      color.Color
	Stroke    color.Color
	LineWidth float64
	Dash      []float64

	Glow      float64
	GlowColor color.Color
}

// Font selects the label face.
type Font struct {
	Size float64
	Bold bool
}

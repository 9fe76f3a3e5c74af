package viewport

import (
	"math"

	"github.com/google/uuid"

	"github.com/matzehuels/repograph/pkg/graph"
)

// Zoom limits and step.
const (
	MinZoom  = 0.3
	MaxZoom  = 3.0
	ZoomStep = 1.2
)

// HitRadius is the graph-space distance within which a pointer hits a node.
const HitRadius = 22.0

// State is the transient interaction state of one view. It is a value:
// every transition returns a new State and leaves the old one intact.
type State struct {
	LoadID uuid.UUID // scene the state belongs to

	Offset graph.Point // pan offset in backing pixels
	Zoom   float64

	HoveredID  string
	SelectedID string
	DraggedID  string

	Panning  bool
	PanStart graph.Point // last pointer position while panning, client units

	SelectedIndex int // keyboard traversal position
	Filters       Filters
}

// NewState returns the initial state for scene s: zoom 1, no offset,
// nothing selected, everything shown.
func NewState(s *Scene) State {
	st := State{Zoom: 1, Filters: ShowAll}
	if s != nil {
		st.LoadID = s.LoadID
	}
	return st
}

// Sync returns st unchanged if it belongs to s, otherwise a fresh state
// for s. Filters survive a reload. The zero State is never current.
func (st State) Sync(s *Scene) State {
	var id uuid.UUID
	if s != nil {
		id = s.LoadID
	}
	if st.Zoom != 0 && st.LoadID == id {
		return st
	}
	fresh := NewState(s)
	if st.Zoom != 0 {
		fresh.Filters = st.Filters
	}
	return fresh
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// WithZoom returns st with zoom set to z, clamped.
func (st State) WithZoom(z float64) State {
	st.Zoom = ClampZoom(z)
	return st
}

// ZoomPercent returns the zoom level as a rounded percentage.
func (st State) ZoomPercent() int {
	return int(math.Round(st.Zoom * 100))
}

// Reset returns st with zoom 1 and no pan offset.
func (st State) Reset() State {
	st.Zoom = 1
	st.Offset = graph.Point{}
	return st
}

// Geometry describes how the drawing surface sits on screen. Pointer
// events arrive in client coordinates; the surface has a backing
// resolution that may differ from its displayed size.
type Geometry struct {
	Origin  graph.Point // top-left corner of the displayed surface, client units
	Display graph.Point // displayed width and height, client units
	Backing graph.Point // backing width and height, pixels
}

// CanvasGeometry is a surface of the standard canvas size displayed 1:1 at
// the client origin.
var CanvasGeometry = Geometry{
	Display: graph.Point{X: graph.CanvasWidth, Y: graph.CanvasHeight},
	Backing: graph.Point{X: graph.CanvasWidth, Y: graph.CanvasHeight},
}

// Scale returns the backing-to-display ratio per axis. A zero display
// dimension counts as 1:1.
func (g Geometry) Scale() graph.Point {
	s := graph.Point{X: 1, Y: 1}
	if g.Display.X > 0 && g.Backing.X > 0 {
		s.X = g.Backing.X / g.Display.X
	}
	if g.Display.Y > 0 && g.Backing.Y > 0 {
		s.Y = g.Backing.Y / g.Display.Y
	}
	return s
}

// Center returns the centre of the backing surface.
func (g Geometry) Center() graph.Point {
	return g.Backing.Scale(0.5)
}

// ToGraph maps a client-space pointer position to graph space:
// ((client - origin) * backing/display - offset) / zoom.
func (st State) ToGraph(client graph.Point, g Geometry) graph.Point {
	s := g.Scale()
	d := client.Sub(g.Origin)
	dev := graph.Point{X: d.X * s.X, Y: d.Y * s.Y}
	return dev.Sub(st.Offset).Scale(1 / st.zoom())
}

// ToScreen is the inverse of ToGraph.
func (st State) ToScreen(p graph.Point, g Geometry) graph.Point {
	s := g.Scale()
	dev := p.Scale(st.zoom()).Add(st.Offset)
	return graph.Point{X: dev.X / s.X, Y: dev.Y / s.Y}.Add(g.Origin)
}

// ToDevice maps a graph-space point to backing pixels.
func (st State) ToDevice(p graph.Point) graph.Point {
	return p.Scale(st.zoom()).Add(st.Offset)
}

// CenterOn returns st with the offset chosen so p is drawn at the centre
// of the backing surface at the current zoom.
func (st State) CenterOn(p graph.Point, g Geometry) State {
	st.Offset = g.Center().Sub(p.Scale(st.zoom()))
	return st
}

func (st State) zoom() float64 {
	if st.Zoom <= 0 {
		return 1
	}
	return st.Zoom
}

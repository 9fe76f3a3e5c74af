package viewport

import "github.com/matzehuels/repograph/pkg/graph"

// Event is an input to Reduce.
type Event interface{ event() }

// Pointer events carry the pointer position in client coordinates.
type (
	PointerDown  struct{ Client graph.Point }
	PointerMove  struct{ Client graph.Point }
	PointerUp    struct{}
	PointerLeave struct{}
	// Wheel is accepted and ignored so scrolling passes through to the page.
	Wheel struct{ DX, DY float64 }
)

// Key identifies a navigation key.
type Key int

// Navigation keys.
const (
	KeyNone Key = iota
	KeyRight
	KeyArrowDown
	KeyLeft
	KeyUp
)

// KeyDown is a key press. Keys other than the arrows are ignored.
type KeyDown struct{ Key Key }

// Commands from UI controls.
type (
	ZoomIn      struct{}
	ZoomOut     struct{}
	ResetView   struct{}
	PanBy       struct{ Delta graph.Point } // offset change in backing pixels
	ToggleType  struct{ Type graph.NodeType }
	ToggleEdges struct{}
	Select      struct{ ID string } // select a node by ID, empty clears
)

func (PointerDown) event()  {}
func (PointerMove) event()  {}
func (PointerUp) event()    {}
func (PointerLeave) event() {}
func (Wheel) event()        {}
func (KeyDown) event()      {}
func (ZoomIn) event()       {}
func (ZoomOut) event()      {}
func (ResetView) event()    {}
func (PanBy) event()        {}
func (ToggleType) event()   {}
func (ToggleEdges) event()  {}
func (Select) event()       {}

// Reduce applies ev to st and returns the new state. Dragging writes the
// dragged node's position through s.Pin; no other event touches the scene.
// Events on an empty scene only affect zoom and filters.
func Reduce(st State, s *Scene, g Geometry, ev Event) State {
	st = st.Sync(s)
	switch ev := ev.(type) {
	case PointerDown:
		return pointerDown(st, s, g, ev.Client)
	case PointerMove:
		return pointerMove(st, s, g, ev.Client)
	case PointerUp, PointerLeave:
		st.DraggedID = ""
		st.Panning = false
		return st
	case KeyDown:
		return keyDown(st, s, g, ev.Key)
	case ZoomIn:
		return st.WithZoom(st.Zoom * ZoomStep)
	case ZoomOut:
		return st.WithZoom(st.Zoom / ZoomStep)
	case ResetView:
		return st.Reset()
	case PanBy:
		st.Offset = st.Offset.Add(ev.Delta)
		return st
	case ToggleType:
		st.Filters = st.Filters.Toggle(ev.Type)
		return st
	case ToggleEdges:
		st.Filters.Edges = !st.Filters.Edges
		return st
	case Select:
		return selectID(st, s, ev.ID)
	default:
		return st
	}
}

func pointerDown(st State, s *Scene, g Geometry, client graph.Point) State {
	if i, ok := HitTest(s, st.Filters, st.ToGraph(client, g)); ok {
		id := s.Nodes[i].ID
		st.DraggedID = id
		st.SelectedID = id
		st.SelectedIndex = i
		return st
	}
	st.Panning = true
	st.PanStart = client
	return st
}

func pointerMove(st State, s *Scene, g Geometry, client graph.Point) State {
	if st.Panning && st.DraggedID == "" {
		d := client.Sub(st.PanStart)
		sc := g.Scale()
		st.Offset = st.Offset.Add(graph.Point{X: d.X * sc.X, Y: d.Y * sc.Y})
		st.PanStart = client
		return st
	}
	p := st.ToGraph(client, g)
	if st.DraggedID != "" {
		s.Pin(st.DraggedID, p)
		return st
	}
	st.HoveredID = ""
	if i, ok := HitTest(s, st.Filters, p); ok {
		st.HoveredID = s.Nodes[i].ID
	}
	return st
}

func keyDown(st State, s *Scene, g Geometry, k Key) State {
	n := s.Len()
	if n == 0 {
		return st
	}
	i := st.SelectedIndex
	switch k {
	case KeyRight, KeyArrowDown:
		i = (i + 1) % n
	case KeyLeft, KeyUp:
		i = (i - 1 + n) % n
	default:
		return st
	}
	// SelectedIndex may be stale if it was set against a longer scene.
	i = ((i % n) + n) % n
	st.SelectedIndex = i
	node := &s.Nodes[i]
	st.SelectedID = node.ID
	if node.Placed {
		st = st.CenterOn(node.Pos(), g)
	}
	return st
}

func selectID(st State, s *Scene, id string) State {
	if id == "" {
		st.SelectedID = ""
		return st
	}
	if i, ok := s.Index(id); ok {
		st.SelectedID = id
		st.SelectedIndex = i
	}
	return st
}

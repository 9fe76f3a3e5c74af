package viewport

import (
	"github.com/google/uuid"

	"github.com/matzehuels/repograph/pkg/graph"
)

// Scene is the positioned working set of one loaded graph. It owns a copy
// of the nodes so interaction can move them without touching the caller's
// data. LoadID changes on every load; state bound to an older LoadID is
// stale and is reset by [State.Sync].
type Scene struct {
	LoadID uuid.UUID
	Nodes  []graph.Node
	Edges  []graph.Edge

	index map[string]int
}

// NewScene copies nodes and edges into a new scene with a fresh LoadID.
func NewScene(nodes []graph.Node, edges []graph.Edge) *Scene {
	s := &Scene{
		LoadID: uuid.New(),
		Nodes:  append([]graph.Node(nil), nodes...),
		Edges:  append([]graph.Edge(nil), edges...),
	}
	s.index = graph.Index(s.Nodes)
	return s
}

// Snapshot returns a copy of s with the same LoadID, so state bound to s
// stays current for the copy. A render loop draws from snapshots while
// interaction keeps mutating s.
func (s *Scene) Snapshot() *Scene {
	if s == nil {
		return nil
	}
	return &Scene{
		LoadID: s.LoadID,
		Nodes:  append([]graph.Node(nil), s.Nodes...),
		Edges:  s.Edges,
		index:  s.index,
	}
}

// FromLayout loads a computed layout.
func FromLayout(l graph.Layout) *Scene {
	return NewScene(l.Nodes, l.Edges)
}

// Empty reports whether there is nothing to show yet.
func (s *Scene) Empty() bool { return s == nil || len(s.Nodes) == 0 }

// Len returns the number of nodes.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Nodes)
}

// Index returns the position of the node with the given ID.
func (s *Scene) Index(id string) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[id]
	return i, ok
}

// Node returns the node with the given ID.
func (s *Scene) Node(id string) (*graph.Node, bool) {
	i, ok := s.Index(id)
	if !ok {
		return nil, false
	}
	return &s.Nodes[i], true
}

// Pin moves a node to p and marks it as manually placed. The position
// stays until the node is pinned again or the graph is reloaded. Pin
// reports whether the node exists.
func (s *Scene) Pin(id string, p graph.Point) bool {
	n, ok := s.Node(id)
	if !ok {
		return false
	}
	n.Place(p)
	n.Pinned = true
	n.VX, n.VY = 0, 0
	return true
}

// Detail returns the side-panel summary of a node.
func (s *Scene) Detail(id string) (graph.Detail, bool) {
	n, ok := s.Node(id)
	if !ok {
		return graph.Detail{}, false
	}
	return graph.DetailOf(*n), true
}

// Layout returns the current positions as a layout, including any pinned
// overrides.
func (s *Scene) Layout() graph.Layout {
	return graph.Layout{
		Width:  graph.CanvasWidth,
		Height: graph.CanvasHeight,
		Nodes:  append([]graph.Node(nil), s.Nodes...),
		Edges:  append([]graph.Edge(nil), s.Edges...),
	}
}

package viewport

import "github.com/matzehuels/repograph/pkg/graph"

// Filters controls which node types and whether edges are drawn.
type Filters struct {
	Repository bool
	Directory  bool
	File       bool
	Edges      bool
}

// ShowAll shows every node type and edges.
var ShowAll = Filters{Repository: true, Directory: true, File: true, Edges: true}

// ShowsType reports whether nodes of type t are shown.
func (f Filters) ShowsType(t graph.NodeType) bool {
	switch t.Kind() {
	case graph.TypeRepository:
		return f.Repository
	case graph.TypeDirectory:
		return f.Directory
	default:
		return f.File
	}
}

// Toggle flips the visibility of node type t.
func (f Filters) Toggle(t graph.NodeType) Filters {
	switch t.Kind() {
	case graph.TypeRepository:
		f.Repository = !f.Repository
	case graph.TypeDirectory:
		f.Directory = !f.Directory
	default:
		f.File = !f.File
	}
	return f
}

// Visible reports whether n is drawn and can be hit: it must be placed and
// its type shown.
func (f Filters) Visible(n *graph.Node) bool {
	return n.Placed && f.ShowsType(n.Type)
}

// VisibleNodes returns the indices of visible nodes in scene order.
func (f Filters) VisibleNodes(s *Scene) []int {
	if s == nil {
		return nil
	}
	out := make([]int, 0, len(s.Nodes))
	for i := range s.Nodes {
		if f.Visible(&s.Nodes[i]) {
			out = append(out, i)
		}
	}
	return out
}

// Segment is a drawable edge with resolved endpoints.
type Segment struct {
	Edge     graph.Edge
	From, To graph.Point
}

// VisibleEdges resolves the edges to draw. Edges are dropped when the edge
// toggle is off, when an endpoint is missing (dangling), or when an
// endpoint is hidden.
func (f Filters) VisibleEdges(s *Scene) []Segment {
	if s == nil || !f.Edges {
		return nil
	}
	out := make([]Segment, 0, len(s.Edges))
	for _, e := range s.Edges {
		from, ok := s.Node(e.From)
		if !ok || !f.Visible(from) {
			continue
		}
		to, ok := s.Node(e.To)
		if !ok || !f.Visible(to) {
			continue
		}
		out = append(out, Segment{Edge: e, From: from.Pos(), To: to.Pos()})
	}
	return out
}

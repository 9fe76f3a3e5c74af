package viewport

import "github.com/matzehuels/repograph/pkg/graph"

// HitTest returns the index of the first visible node within HitRadius of
// p, a graph-space point. Overlapping nodes resolve to the one earliest in
// scene order; there is no z-ordering.
func HitTest(s *Scene, f Filters, p graph.Point) (int, bool) {
	if s == nil {
		return -1, false
	}
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if !f.Visible(n) {
			continue
		}
		if p.Dist(n.Pos()) < HitRadius {
			return i, true
		}
	}
	return -1, false
}

package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/repograph/pkg/errors"
)

// =============================================================================
// Graph - Graph Description
// =============================================================================

// Graph is the graph description delivered by the analysis backend once a
// job completes. It is received once per job and treated as immutable; the
// layout engine works on copies.
//
// The JSON form is the backend's job result. Unknown top-level keys
// (overview, model_id, ...) are ignored when decoding.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// IsEmpty reports whether the graph has no nodes.
func (g Graph) IsEmpty() bool { return len(g.Nodes) == 0 }

// Clone returns a deep copy of the node and edge slices.
// Dependencies slices are shared since nothing mutates them.
func (g Graph) Clone() Graph {
	return Graph{
		Nodes: append([]Node(nil), g.Nodes...),
		Edges: append([]Edge(nil), g.Edges...),
	}
}

// Index maps node IDs to their slice position.
// When IDs repeat, the first occurrence wins.
func Index(nodes []Node) map[string]int {
	idx := make(map[string]int, len(nodes))
	for i := range nodes {
		if _, ok := idx[nodes[i].ID]; !ok {
			idx[nodes[i].ID] = i
		}
	}
	return idx
}

// Validate checks that every node has a usable, unique ID.
//
// Edges are not checked: an edge pointing at a missing node is dangling and
// is skipped silently by layout and rendering, never rejected.
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if err := errs.ValidateNodeID(n.ID); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		if _, dup := seen[n.ID]; dup {
			return errs.New(errs.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

// DanglingEdges returns the edges whose endpoints are not both in the graph.
func (g Graph) DanglingEdges() []Edge {
	idx := Index(g.Nodes)
	var out []Edge
	for _, e := range g.Edges {
		_, okFrom := idx[e.From]
		_, okTo := idx[e.To]
		if !okFrom || !okTo {
			out = append(out, e)
		}
	}
	return out
}

// =============================================================================
// Serialization
// =============================================================================

// ReadGraph decodes and validates a graph description from r.
// ReadGraph does not close r.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode graph")
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// ReadGraphFile reads a graph description from a JSON file.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Graph{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Graph{}, err
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraph encodes g to w as indented JSON.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

// MarshalGraph serializes a graph to compact JSON.
// The output is stable for a given node and edge order, so it is used as
// cache key material.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.Marshal(g)
}

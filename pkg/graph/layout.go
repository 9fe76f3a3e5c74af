package graph

import (
	"encoding/json"
	"io"
	"os"

	errs "github.com/matzehuels/repograph/pkg/errors"
)

// Canvas dimensions of graph space. Node positions are computed in this
// fixed logical rectangle regardless of how large the output is drawn.
const (
	CanvasWidth  = 1400.0
	CanvasHeight = 900.0
)

// =============================================================================
// Layout - Positioned Graph
// =============================================================================

// Layout is a graph whose nodes carry computed positions.
//
// It is the hand-off format between the layout pipeline and anything that
// draws: the render command, the explore TUI and external frontends. Nodes
// keep the order they had after planning, which is also the order used for
// hit-testing and keyboard traversal.
type Layout struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Nodes      []Node            `json:"nodes"`
	Edges      []Edge            `json:"edges"`
	Categories map[string]string `json:"categories,omitempty"` // node ID → category name
	Iterations int               `json:"iterations,omitempty"` // relaxation passes applied
}

// Graph returns the layout's nodes and edges as a Graph.
func (l Layout) Graph() Graph {
	return Graph{Nodes: l.Nodes, Edges: l.Edges}
}

// IsLayout reports whether l carries computed positions. A plain graph
// description decoded as a Layout has zero width.
func (l Layout) IsLayout() bool { return l.Width > 0 && l.Height > 0 }

// MarshalLayout serializes a layout to indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes to a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode layout")
	}
	return l, nil
}

// ReadLayout decodes a layout from r.
func ReadLayout(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, err
	}
	return UnmarshalLayout(data)
}

// ReadLayoutFile reads a layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Layout{}, err
	}
	return UnmarshalLayout(data)
}

// WriteLayoutFile writes a layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

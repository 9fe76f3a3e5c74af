package graph

import "math"

// =============================================================================
// Node Types
// =============================================================================

// NodeType identifies what kind of repository entity a node represents.
type NodeType string

// Node types drawn by the renderer. Each one has its own colour and its own
// visibility toggle.
const (
	TypeRepository NodeType = "repository"
	TypeDirectory  NodeType = "directory"
	TypeFile       NodeType = "file"
)

// Types lists the node types in display order.
var Types = []NodeType{TypeRepository, TypeDirectory, TypeFile}

// Kind folds backend-specific type names onto the three drawable types.
// Analysis backends report file nodes by language ("python", "code", ...),
// so anything that is not a repository or directory is a file.
func (t NodeType) Kind() NodeType {
	switch t {
	case TypeRepository, TypeDirectory:
		return t
	default:
		return TypeFile
	}
}

// =============================================================================
// Point
// =============================================================================

// Point is a position in graph space or screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// =============================================================================
// Node
// =============================================================================

// Node is one analysed repository entity: the repository root, a directory
// or a file. The descriptive fields come from the analysis backend and are
// never modified here. X, Y, VX and VY are layout fields; Placed reports
// whether X and Y hold a computed position, and Pinned marks a position set
// by hand (dragging) rather than by the layout engine.
type Node struct {
	ID           string   `json:"id"`
	Label        string   `json:"label,omitempty"`
	Type         NodeType `json:"type,omitempty"`
	Language     string   `json:"language,omitempty"`
	Size         int64    `json:"size,omitempty"`
	Description  string   `json:"description,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	VX     float64 `json:"-"`
	VY     float64 `json:"-"`
	Placed bool    `json:"placed,omitempty"`
	Pinned bool    `json:"pinned,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Pos returns the node position.
func (n *Node) Pos() Point { return Point{n.X, n.Y} }

// Place sets the node position and marks it placed.
func (n *Node) Place(p Point) {
	n.X, n.Y = p.X, p.Y
	n.Placed = true
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed relationship between two nodes. Label describes the
// relationship ("contains", "imports") and is not interpreted.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) IsSelfLoop() bool { return e.From == e.To }

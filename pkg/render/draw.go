package render

import (
	"math"
	"strings"

	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/viewport"
)

// Placeholder lines drawn while there is no graph to show.
const (
	PlaceholderTitle    = "Analyzing repository structure..."
	PlaceholderSubtitle = "Building logical architecture graph"
)

// Stats summarizes one drawn frame.
type Stats struct {
	Nodes       int
	Edges       int
	Placeholder bool
}

// Renderer paints scenes onto surfaces.
type Renderer struct {
	Theme Theme
}

// NewRenderer returns a renderer using DefaultTheme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme}
}

// Draw paints scene as seen through st using the default theme.
func Draw(s Surface, scene *viewport.Scene, st viewport.State) Stats {
	return NewRenderer().Draw(s, scene, st)
}

// Draw clears s and paints the visible edges with arrowheads, then the
// visible nodes with their labels. An empty scene paints the loading
// placeholder instead. State that belongs to a different scene is treated
// as freshly reset.
func (r *Renderer) Draw(s Surface, scene *viewport.Scene, st viewport.State) Stats {
	s.Clear(r.Theme.Background)
	if scene.Empty() {
		r.placeholder(s)
		return Stats{Placeholder: true}
	}
	st = st.Sync(scene)

	s.Push()
	defer s.Pop()
	s.Translate(st.Offset.X, st.Offset.Y)
	s.Scale(st.Zoom)

	segs := st.Filters.VisibleEdges(scene)
	for _, seg := range segs {
		r.edge(s, seg.From, seg.To)
	}
	visible := st.Filters.VisibleNodes(scene)
	for _, i := range visible {
		r.node(s, &scene.Nodes[i], st)
	}
	return Stats{Nodes: len(visible), Edges: len(segs)}
}

func (r *Renderer) edge(s Surface, from, to graph.Point) {
	s.Line(from, to, Paint{Stroke: r.Theme.Edge, LineWidth: 1.5})
	head := ArrowHead(from, to)
	s.Polygon(head[:], Paint{Fill: r.Theme.Arrow})
}

// ArrowHead returns the triangle marking the target end of an edge: the
// tip sits ArrowOffset back from to along the edge direction, the base
// ArrowSize further back and ArrowSize to either side. A zero-length edge
// points along +x.
func ArrowHead(from, to graph.Point) [3]graph.Point {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	cos, sin := math.Cos(angle), math.Sin(angle)
	back := ArrowOffset + ArrowSize
	return [3]graph.Point{
		{X: to.X - ArrowOffset*cos, Y: to.Y - ArrowOffset*sin},
		{X: to.X - back*cos - ArrowSize*sin, Y: to.Y - back*sin + ArrowSize*cos},
		{X: to.X - back*cos + ArrowSize*sin, Y: to.Y - back*sin - ArrowSize*cos},
	}
}

func (r *Renderer) node(s Surface, n *graph.Node, st viewport.State) {
	p := n.Pos()
	hovered := n.ID == st.HoveredID
	selected := n.ID == st.SelectedID
	highlight := hovered || selected

	if selected {
		s.Circle(p, NodeRadius+RingGap, Paint{
			Stroke:    r.Theme.Selection,
			LineWidth: 3,
			Dash:      []float64{5, 5},
		})
	}

	fill := r.Theme.NodeColor(n.Type)
	body := Paint{Fill: fill, Stroke: r.Theme.NodeStroke, LineWidth: 2}
	if highlight {
		fill = Opaque(fill)
		body.Fill = fill
		body.LineWidth = 3
		body.Glow, body.GlowColor = 15, fill
	}
	if selected {
		body.Stroke = r.Theme.SelectionStroke
		body.Glow, body.GlowColor = 20, r.Theme.Selection
	}
	s.Circle(p, NodeRadius, body)

	label := TruncateLabel(n.DisplayLabel())
	font := Font{Size: 11}
	if highlight {
		font = Font{Size: 12, Bold: true}
		w := s.MeasureText(label, font)
		s.Rect(p.X-w/2-4, p.Y-NodeRadius-24, w+8, 16, Paint{Fill: r.Theme.LabelPlate})
	}
	s.Text(label, graph.Point{X: p.X, Y: p.Y - NodeRadius - 16}, font, r.Theme.Label)

	if highlight && n.Language != "" {
		s.Text(strings.ToUpper(n.Language), graph.Point{X: p.X, Y: p.Y + NodeRadius + 12},
			Font{Size: 9, Bold: true}, r.Theme.Badge)
	}
}

func (r *Renderer) placeholder(s Surface) {
	w, h := s.Size()
	s.Text(PlaceholderTitle, graph.Point{X: w / 2, Y: h/2 - 12}, Font{Size: 18, Bold: true}, r.Theme.Placeholder)
	s.Text(PlaceholderSubtitle, graph.Point{X: w / 2, Y: h/2 + 14}, Font{Size: 13}, r.Theme.PlaceholderMuted)
}

// TruncateLabel shortens labels longer than LabelMax runes to LabelMax
// runes followed by "...".
func TruncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= LabelMax {
		return s
	}
	return string(runes[:LabelMax]) + "..."
}

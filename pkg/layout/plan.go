package layout

import (
	"math"

	"github.com/matzehuels/repograph/pkg/classify"
	"github.com/matzehuels/repograph/pkg/graph"
)

// Geometry of the initial placement, in graph-space units.
const (
	NodeSpacing = 100.0 // horizontal step within a band
	SideStep    = 70.0  // vertical step within a side column
	Margin      = 100.0 // left and right canvas margin for bands and grid

	GridTop        = 780.0 // y of the first grid row
	GridRowStep    = 60.0
	GridMaxSpacing = 120.0
)

// Band is a horizontal layer of the main flow.
type Band struct {
	Category classify.Category
	Y        float64
}

// Column is a vertical side column for auxiliary categories.
type Column struct {
	Category classify.Category
	X        float64
	StartY   float64
}

// Bands lists the main-flow layers from top to bottom.
var Bands = []Band{
	{classify.Entry, 100},
	{classify.Frontend, 250},
	{classify.Backend, 400},
	{classify.Services, 550},
	{classify.Data, 700},
}

// Columns lists the side columns. Utilities and tests share the right
// margin; tests start further down.
var Columns = []Column{
	{classify.Config, 80, 150},
	{classify.Utilities, 1320, 150},
	{classify.Tests, 1320, 500},
}

// Plan assigns initial positions to grouped nodes and returns them as one
// slice: bands in order, then side columns, then the grid of uncategorized
// nodes. Velocities are zeroed and every returned node is placed. Plan is
// deterministic for a given grouping.
func Plan(groups classify.Groups) []graph.Node {
	out := make([]graph.Node, 0, groups.Count())

	for _, b := range Bands {
		nodes := groups[b.Category]
		startX := BandStart(len(nodes))
		for i, n := range nodes {
			out = append(out, placed(n, graph.Point{X: startX + float64(i)*NodeSpacing, Y: b.Y}))
		}
	}

	for _, c := range Columns {
		for i, n := range groups[c.Category] {
			out = append(out, placed(n, graph.Point{X: c.X, Y: c.StartY + float64(i)*SideStep}))
		}
	}

	others := groups[classify.Other]
	for i, n := range others {
		out = append(out, placed(n, GridCell(i, len(others))))
	}
	return out
}

// BandStart returns the x of the first node in a band holding count nodes.
// The band is centred on the canvas; its nominal width is capped at the
// canvas width minus both margins, so very wide bands start at the left
// margin and run past the right one until relaxation clamps them.
func BandStart(count int) float64 {
	if count <= 0 {
		return graph.CanvasWidth / 2
	}
	width := math.Min(float64(count-1)*NodeSpacing, graph.CanvasWidth-2*Margin)
	return (graph.CanvasWidth - width) / 2
}

// GridColumns returns the number of grid columns for count nodes.
func GridColumns(count int) int {
	if count <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(count))))
}

// GridCell returns the position of the index-th of count grid nodes.
func GridCell(index, count int) graph.Point {
	cols := GridColumns(count)
	if cols == 0 {
		return graph.Point{X: Margin, Y: GridTop}
	}
	spacing := math.Min(GridMaxSpacing, (graph.CanvasWidth-2*Margin)/float64(cols))
	row, col := index/cols, index%cols
	return graph.Point{
		X: Margin + float64(col)*spacing,
		Y: GridTop + float64(row)*GridRowStep,
	}
}

func placed(n graph.Node, p graph.Point) graph.Node {
	n.Place(p)
	n.VX, n.VY = 0, 0
	return n
}

package render

import (
	"image/color"
	"math"

	"github.com/matzehuels/repograph/pkg/graph"
)

// Node and edge geometry in graph-space units.
const (
	NodeRadius  = 22.0
	RingGap     = 8.0  // selection ring distance from the node edge
	ArrowOffset = 25.0 // arrow tip distance back from the target centre
	ArrowSize   = 8.0
	LabelMax    = 12 // runes shown before truncation
)

// Theme holds the colours used by Renderer.
type Theme struct {
	Background color.Color

	Edge  color.NRGBA
	Arrow color.NRGBA

	Repository color.NRGBA
	Directory  color.NRGBA
	File       color.NRGBA

	NodeStroke      color.NRGBA
	Selection       color.NRGBA // dashed ring and glow
	SelectionStroke color.NRGBA

	Label      color.NRGBA
	LabelPlate color.NRGBA
	Badge      color.NRGBA

	Placeholder      color.NRGBA
	PlaceholderMuted color.NRGBA
}

// DefaultTheme is the violet-on-dark palette.
var DefaultTheme = Theme{
	Background: rgba(15, 15, 35, 1),

	Edge:  rgba(139, 92, 246, 0.25),
	Arrow: rgba(139, 92, 246, 0.4),

	Repository: rgba(139, 92, 246, 0.7),
	Directory:  rgba(59, 130, 246, 0.7),
	File:       rgba(16, 185, 129, 0.7),

	NodeStroke:      rgba(255, 255, 255, 0.9),
	Selection:       rgba(236, 72, 153, 0.8),
	SelectionStroke: rgba(236, 72, 153, 1),

	Label:      rgba(255, 255, 255, 1),
	LabelPlate: rgba(0, 0, 0, 0.7),
	Badge:      rgba(236, 72, 153, 0.9),

	Placeholder:      rgba(255, 255, 255, 1),
	PlaceholderMuted: rgba(255, 255, 255, 0.6),
}

// NodeColor returns the fill for a node type.
func (t Theme) NodeColor(typ graph.NodeType) color.NRGBA {
	switch typ.Kind() {
	case graph.TypeRepository:
		return t.Repository
	case graph.TypeDirectory:
		return t.Directory
	default:
		return t.File
	}
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}

// Opaque returns c with full alpha.
func Opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}

package sink

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/render"
)

type cell struct {
	r    rune
	fg   color.Color
	bg   color.Color
	bold bool
}

// Cells is a Surface that rasterises onto a grid of terminal cells. The
// logical size is independent of the grid; drawing is scaled to fit.
// Shapes are approximated: filled circles become a single glyph, stroke-only
// circles become brackets, lines are traced with dots and arrowheads become
// a direction glyph at the tip.
type Cells struct {
	cols, rows int
	width      float64
	height     float64

	grid []cell
	x    xform
}

var _ render.Surface = (*Cells)(nil)

// NewCells returns a cols×rows grid presenting a width×height surface.
func NewCells(cols, rows int, width, height float64) *Cells {
	cols, rows = max(cols, 1), max(rows, 1)
	c := &Cells{cols: cols, rows: rows, width: width, height: height}
	c.grid = make([]cell, cols*rows)
	c.x = newXform(float64(cols)/width, float64(rows)/height)
	return c
}

// Grid returns the grid size.
func (c *Cells) Grid() (cols, rows int) { return c.cols, c.rows }

func (c *Cells) Size() (float64, float64) { return c.width, c.height }

func (c *Cells) Clear(col color.Color) {
	for i := range c.grid {
		c.grid[i] = cell{r: ' ', bg: col}
	}
	c.x.reset()
}

func (c *Cells) Push()                    { c.x.push() }
func (c *Cells) Pop()                     { c.x.pop() }
func (c *Cells) Translate(dx, dy float64) { c.x.translate(dx, dy) }
func (c *Cells) Scale(s float64)          { c.x.scale(s) }

func (c *Cells) Line(a, b graph.Point, p render.Paint) {
	if p.Stroke == nil {
		return
	}
	pa, pb := c.x.point(a), c.x.point(b)
	steps := int(math.Max(math.Abs(pb.X-pa.X), math.Abs(pb.Y-pa.Y)))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col, row := c.cellAt(graph.Point{X: pa.X + (pb.X-pa.X)*t, Y: pa.Y + (pb.Y-pa.Y)*t})
		if cur, ok := c.at(col, row); ok && cur.r == ' ' {
			c.set(col, row, '·', p.Stroke, false)
		}
	}
}

// Polygon marks the first point (an arrow tip) with a direction glyph
// pointing away from the centroid of the remaining points.
func (c *Cells) Polygon(pts []graph.Point, p render.Paint) {
	if len(pts) < 2 || p.Fill == nil {
		return
	}
	var base graph.Point
	for _, q := range pts[1:] {
		base = base.Add(q)
	}
	base = base.Scale(1 / float64(len(pts)-1))
	dir := pts[0].Sub(base)
	col, row := c.cellAt(c.x.point(pts[0]))
	c.set(col, row, arrowGlyph(dir), p.Fill, false)
}

func (c *Cells) Circle(center graph.Point, r float64, p render.Paint) {
	col, row := c.cellAt(c.x.point(center))
	if p.Fill == nil {
		if p.Stroke != nil {
			c.set(col-1, row, '[', p.Stroke, true)
			c.set(col+1, row, ']', p.Stroke, true)
		}
		return
	}
	glyph := '●'
	if p.Glow > 0 {
		glyph = '◉'
	}
	c.set(col, row, glyph, p.Fill, p.Glow > 0)
}

func (c *Cells) Rect(x, y, w, h float64, p render.Paint) {
	if p.Fill == nil {
		return
	}
	c0, r0 := c.cellAt(c.x.point(graph.Point{X: x, Y: y}))
	c1, r1 := c.cellAt(c.x.point(graph.Point{X: x + w, Y: y + h}))
	r1 = max(r1-1, r0)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if i, ok := c.index(col, row); ok {
				c.grid[i].bg = p.Fill
			}
		}
	}
}

// Text writes s one rune per cell, centred on at.
func (c *Cells) Text(s string, at graph.Point, f render.Font, col color.Color) {
	runes := []rune(s)
	cx, row := c.cellAt(c.x.point(at))
	start := cx - len(runes)/2
	for i, r := range runes {
		c.set(start+i, row, r, col, f.Bold)
	}
}

// MeasureText returns the logical width of s at one rune per cell.
func (c *Cells) MeasureText(s string, f render.Font) float64 {
	return float64(len([]rune(s))) / c.x.baseX
}

// Render returns the grid as styled terminal text, one line per row.
func (c *Cells) Render() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		var style cell
		flush := func() {
			if len(run) > 0 {
				b.WriteString(styleFor(style).Render(string(run)))
				run = run[:0]
			}
		}
		for col := 0; col < c.cols; col++ {
			cl := c.grid[row*c.cols+col]
			if len(run) > 0 && !sameStyle(cl, style) {
				flush()
			}
			style = cl
			run = append(run, cl.r)
		}
		flush()
	}
	return b.String()
}

// String returns the grid as plain text without styling.
func (c *Cells) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			r := c.grid[row*c.cols+col].r
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (c *Cells) cellAt(d graph.Point) (int, int) {
	return int(math.Floor(d.X)), int(math.Floor(d.Y))
}

func (c *Cells) index(col, row int) (int, bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, false
	}
	return row*c.cols + col, true
}

func (c *Cells) at(col, row int) (cell, bool) {
	i, ok := c.index(col, row)
	if !ok {
		return cell{}, false
	}
	return c.grid[i], true
}

func (c *Cells) set(col, row int, r rune, fg color.Color, bold bool) {
	if i, ok := c.index(col, row); ok {
		c.grid[i].r = r
		c.grid[i].fg = fg
		c.grid[i].bold = bold
	}
}

func arrowGlyph(d graph.Point) rune {
	glyphs := [...]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	a := math.Atan2(d.Y, d.X)
	i := int(math.Round(a/(math.Pi/4))+8) % 8
	return glyphs[i]
}

func sameStyle(a, b cell) bool {
	return hexColor(a.fg) == hexColor(b.fg) && hexColor(a.bg) == hexColor(b.bg) && a.bold == b.bold
}

func styleFor(cl cell) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(cl.bold)
	if h := hexColor(cl.fg); h != "" {
		st = st.Foreground(lipgloss.Color(h))
	}
	if h := hexColor(cl.bg); h != "" {
		st = st.Background(lipgloss.Color(h))
	}
	return st
}

// hexColor flattens c onto black, since terminals have no alpha.
func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	n := toNRGBA(c)
	a := float64(n.A) / 255
	return fmt.Sprintf("#%02x%02x%02x", uint8(float64(n.R)*a), uint8(float64(n.G)*a), uint8(float64(n.B)*a))
}

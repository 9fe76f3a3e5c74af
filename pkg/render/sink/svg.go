package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/render"
)

// SVG is a Surface that writes an SVG document. Each Clear starts a new
// document, so the buffer always holds exactly one frame. Coordinates are
// rounded to whole device units.
type SVG struct {
	buf    bytes.Buffer
	canvas *svg.SVG
	width  int
	height int

	x       xform
	filters map[int]string
	faces   *faceCache
}

var _ render.Surface = (*SVG)(nil)

// NewSVG returns a vector surface of the given size.
func NewSVG(width, height int) *SVG {
	s := &SVG{width: width, height: height, faces: sharedFaces}
	s.begin()
	return s
}

func (s *SVG) begin() {
	s.buf.Reset()
	s.x = newXform(1, 1)
	s.filters = make(map[int]string)
	s.canvas = svg.New(&s.buf)
	s.canvas.Start(s.width, s.height)
}

func (s *SVG) Size() (float64, float64) { return float64(s.width), float64(s.height) }

func (s *SVG) Clear(c color.Color) {
	s.begin()
	s.canvas.Rect(0, 0, s.width, s.height, fillStyle(c))
}

func (s *SVG) Push()                    { s.x.push() }
func (s *SVG) Pop()                     { s.x.pop() }
func (s *SVG) Translate(dx, dy float64) { s.x.translate(dx, dy) }
func (s *SVG) Scale(k float64)          { s.x.scale(k) }

func (s *SVG) Line(a, b graph.Point, p render.Paint) {
	if p.Stroke == nil {
		return
	}
	pa, pb := s.x.point(a), s.x.point(b)
	s.canvas.Line(iround(pa.X), iround(pa.Y), iround(pb.X), iround(pb.Y), s.strokeStyle(p))
}

func (s *SVG) Polygon(pts []graph.Point, p render.Paint) {
	if len(pts) < 2 {
		return
	}
	xs, ys := make([]int, len(pts)), make([]int, len(pts))
	for i, q := range pts {
		d := s.x.point(q)
		xs[i], ys[i] = iround(d.X), iround(d.Y)
	}
	s.canvas.Polygon(xs, ys, s.style(p)...)
}

func (s *SVG) Circle(c graph.Point, r float64, p render.Paint) {
	d := s.x.point(c)
	s.canvas.Circle(iround(d.X), iround(d.Y), iround(s.x.length(r)), s.style(p)...)
}

func (s *SVG) Rect(x, y, w, h float64, p render.Paint) {
	d := s.x.point(graph.Point{X: x, Y: y})
	s.canvas.Rect(iround(d.X), iround(d.Y), iround(s.x.length(w)), iround(s.x.length(h)), s.style(p)...)
}

func (s *SVG) Text(t string, at graph.Point, f render.Font, c color.Color) {
	d := s.x.point(at)
	weight := "normal"
	if f.Bold {
		weight = "bold"
	}
	style := fmt.Sprintf("%s;font-family:Go,sans-serif;font-size:%.1fpx;font-weight:%s;text-anchor:middle;dominant-baseline:middle",
		fillStyle(c), s.x.length(f.Size), weight)
	s.canvas.Text(iround(d.X), iround(d.Y), t, style)
}

func (s *SVG) MeasureText(t string, f render.Font) float64 {
	return s.faces.measure(t, f)
}

// Bytes closes the current document and returns it. Drawing after Bytes
// requires a Clear.
func (s *SVG) Bytes() []byte {
	s.canvas.End()
	out := append([]byte(nil), s.buf.Bytes()...)
	return out
}

func (s *SVG) style(p render.Paint) []string {
	var parts []string
	if p.Fill != nil {
		parts = append(parts, fillStyle(p.Fill))
	} else {
		parts = append(parts, "fill:none")
	}
	if p.Stroke != nil {
		parts = append(parts, s.strokeStyle(p))
	}
	out := []string{strings.Join(parts, ";")}
	if p.Glow > 0 {
		out = append(out, fmt.Sprintf(`filter="url(#%s)"`, s.glowFilter(p.Glow)))
	}
	return out
}

func (s *SVG) strokeStyle(p render.Paint) string {
	c := toNRGBA(p.Stroke)
	st := fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-opacity:%.2f;stroke-width:%.2f",
		c.R, c.G, c.B, float64(c.A)/255, s.x.length(p.LineWidth))
	if len(p.Dash) > 0 {
		dash := make([]string, len(p.Dash))
		for i, d := range p.Dash {
			dash[i] = fmt.Sprintf("%.1f", s.x.length(d))
		}
		st += ";stroke-dasharray:" + strings.Join(dash, ",")
	}
	return st
}

// glowFilter defines a blur-and-merge filter for radius r on first use.
func (s *SVG) glowFilter(r float64) string {
	key := iround(s.x.length(r))
	if id, ok := s.filters[key]; ok {
		return id
	}
	id := fmt.Sprintf("glow%d", key)
	std := math.Max(1, float64(key)/3)
	s.canvas.Def()
	s.canvas.Filter(id)
	s.canvas.FeGaussianBlur(svg.Filterspec{In: "SourceGraphic", Result: "blur"}, std, std)
	s.canvas.FeMerge([]string{"blur", "SourceGraphic"})
	s.canvas.Fend()
	s.canvas.DefEnd()
	s.filters[key] = id
	return id
}

func fillStyle(c color.Color) string {
	n := toNRGBA(c)
	return fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.2f", n.R, n.G, n.B, float64(n.A)/255)
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func iround(f float64) int { return int(math.Round(f)) }

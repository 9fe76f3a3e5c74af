package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/fogleman/gg"

	errs "github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/render"
)

// RasterOption configures a Raster.
type RasterOption func(*Raster)

// WithScale sets the device pixel ratio (default 1). A scale of 2 produces
// a 2x image of the same logical size.
func WithScale(s float64) RasterOption {
	return func(r *Raster) {
		if s > 0 {
			r.dpr = s
		}
	}
}

// Raster is a Surface backed by an in-memory RGBA image.
type Raster struct {
	dc     *gg.Context
	width  float64
	height float64
	dpr    float64

	scales []float64 // user scale per Push level, for crisp text
	scale  float64
	faces  *faceCache
}

var _ render.Surface = (*Raster)(nil)

// NewRaster returns a raster surface of the given logical size.
func NewRaster(width, height int, opts ...RasterOption) *Raster {
	r := &Raster{width: float64(width), height: float64(height), dpr: 1, scale: 1, faces: sharedFaces}
	for _, opt := range opts {
		opt(r)
	}
	r.dc = gg.NewContext(int(r.width*r.dpr+0.5), int(r.height*r.dpr+0.5))
	r.dc.Scale(r.dpr, r.dpr)
	return r
}

func (r *Raster) Size() (float64, float64) { return r.width, r.height }

func (r *Raster) Clear(c color.Color) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) Push() {
	r.dc.Push()
	r.scales = append(r.scales, r.scale)
}

func (r *Raster) Pop() {
	r.dc.Pop()
	if n := len(r.scales); n > 0 {
		r.scale = r.scales[n-1]
		r.scales = r.scales[:n-1]
	}
}

func (r *Raster) Translate(dx, dy float64) { r.dc.Translate(dx, dy) }

func (r *Raster) Scale(s float64) {
	r.dc.Scale(s, s)
	r.scale *= s
}

func (r *Raster) Line(a, b graph.Point, p render.Paint) {
	if p.Stroke == nil {
		return
	}
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.stroke(p)
}

func (r *Raster) Polygon(pts []graph.Point, p render.Paint) {
	if len(pts) < 2 {
		return
	}
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, q := range pts[1:] {
		r.dc.LineTo(q.X, q.Y)
	}
	r.dc.ClosePath()
	r.paint(p)
}

func (r *Raster) Circle(c graph.Point, rad float64, p render.Paint) {
	if p.Glow > 0 && p.GlowColor != nil {
		r.glow(c, rad, p)
	}
	r.dc.DrawCircle(c.X, c.Y, rad)
	r.paint(p)
}

// glow approximates a blurred halo with fading concentric discs.
func (r *Raster) glow(c graph.Point, rad float64, p render.Paint) {
	gc := color.NRGBAModel.Convert(p.GlowColor).(color.NRGBA)
	const rings = 4
	for i := rings; i > 0; i-- {
		gc.A = uint8(0x18 * (rings - i + 1))
		r.dc.SetColor(gc)
		r.dc.DrawCircle(c.X, c.Y, rad+p.Glow*float64(i)/rings)
		r.dc.Fill()
	}
}

func (r *Raster) Rect(x, y, w, h float64, p render.Paint) {
	r.dc.DrawRectangle(x, y, w, h)
	r.paint(p)
}

// Text draws with a face sized for the current transform so labels stay
// sharp when zoomed instead of scaling a small bitmap.
func (r *Raster) Text(s string, at graph.Point, f render.Font, c color.Color) {
	dx, dy := r.dc.TransformPoint(at.X, at.Y)
	face := r.faces.face(f.Size*r.scale*r.dpr, f.Bold)

	r.dc.Push()
	defer r.dc.Pop()
	r.dc.Identity()
	if face != nil {
		r.dc.SetFontFace(face)
	}
	r.dc.SetColor(c)
	r.dc.DrawStringAnchored(s, dx, dy, 0.5, 0.5)
}

func (r *Raster) MeasureText(s string, f render.Font) float64 {
	return r.faces.measure(s, f)
}

func (r *Raster) paint(p render.Paint) {
	if p.Fill != nil {
		r.dc.SetColor(p.Fill)
		if p.Stroke != nil {
			r.dc.FillPreserve()
		} else {
			r.dc.Fill()
		}
	}
	if p.Stroke != nil {
		r.stroke(p)
	}
	r.dc.ClearPath()
}

func (r *Raster) stroke(p render.Paint) {
	r.dc.SetColor(p.Stroke)
	r.dc.SetLineWidth(p.LineWidth * r.scale * r.dpr)
	if len(p.Dash) > 0 {
		dash := make([]float64, len(p.Dash))
		for i, d := range p.Dash {
			dash[i] = d * r.scale * r.dpr
		}
		r.dc.SetDash(dash...)
	}
	r.dc.Stroke()
	r.dc.SetDash()
}

// Image returns the rendered image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// WritePNG encodes the image as PNG to w.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.dc.Image()); err != nil {
		return errs.Wrap(errs.ErrCodeRenderFailed, err, "encode png")
	}
	return nil
}

// PNG returns the image encoded as PNG.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package sink

import "github.com/matzehuels/repograph/pkg/graph"

// affine is a translate-then-uniform-scale transform.
type affine struct {
	tx, ty, s float64
}

// xform tracks the Surface transform stack for sinks whose backend has no
// transform of its own. base maps surface units to device units per axis.
type xform struct {
	cur   affine
	stack []affine
	baseX float64
	baseY float64
}

func newXform(baseX, baseY float64) xform {
	return xform{cur: affine{s: 1}, baseX: baseX, baseY: baseY}
}

func (x *xform) push() { x.stack = append(x.stack, x.cur) }

func (x *xform) pop() {
	if n := len(x.stack); n > 0 {
		x.cur = x.stack[n-1]
		x.stack = x.stack[:n-1]
	}
}

func (x *xform) translate(dx, dy float64) {
	x.cur.tx += dx * x.cur.s
	x.cur.ty += dy * x.cur.s
}

func (x *xform) scale(s float64) { x.cur.s *= s }

func (x *xform) reset() {
	x.cur = affine{s: 1}
	x.stack = x.stack[:0]
}

// point maps p to device coordinates.
func (x *xform) point(p graph.Point) graph.Point {
	return graph.Point{
		X: (p.X*x.cur.s + x.cur.tx) * x.baseX,
		Y: (p.Y*x.cur.s + x.cur.ty) * x.baseY,
	}
}

// length maps a distance along x to device units.
func (x *xform) length(l float64) float64 { return l * x.cur.s * x.baseX }

package force

import (
	"math"

	"github.com/matzehuels/repograph/pkg/graph"
)

// Bounds is the working rectangle positions are clamped into.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// DefaultBounds keeps nodes 50 units inside the 1400×900 canvas.
var DefaultBounds = Bounds{MinX: 50, MinY: 50, MaxX: graph.CanvasWidth - 50, MaxY: graph.CanvasHeight - 50}

// Clamp returns p limited to b.
func (b Bounds) Clamp(p graph.Point) graph.Point {
	return graph.Point{
		X: math.Max(b.MinX, math.Min(b.MaxX, p.X)),
		Y: math.Max(b.MinY, math.Min(b.MaxY, p.Y)),
	}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p graph.Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Options tunes the simulation. Zero fields take the defaults.
type Options struct {
	Iterations int     // default 30
	Repulsion  float64 // inverse-square constant, default 2000
	Cutoff     float64 // repulsion only below this distance, default 120
	Step       float64 // scale applied to repulsion, default 0.05
	Attraction float64 // spring constant, default 0.005
	Damping    float64 // velocity retained per iteration, default 0.85
	Bounds     Bounds
}

// DefaultOptions returns the standard simulation parameters.
func DefaultOptions() Options {
	return Options{
		Iterations: 30,
		Repulsion:  2000,
		Cutoff:     120,
		Step:       0.05,
		Attraction: 0.005,
		Damping:    0.85,
		Bounds:     DefaultBounds,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Iterations <= 0 {
		o.Iterations = d.Iterations
	}
	if o.Repulsion == 0 {
		o.Repulsion = d.Repulsion
	}
	if o.Cutoff == 0 {
		o.Cutoff = d.Cutoff
	}
	if o.Step == 0 {
		o.Step = d.Step
	}
	if o.Attraction == 0 {
		o.Attraction = d.Attraction
	}
	if o.Damping == 0 {
		o.Damping = d.Damping
	}
	if o.Bounds == (Bounds{}) {
		o.Bounds = d.Bounds
	}
	return o
}

// Relax runs the force simulation on a copy of nodes and returns it.
//
// Each iteration applies short-range pairwise repulsion, then spring
// attraction along every edge whose endpoints are both present, then moves
// each node by its velocity, damps the velocity and clamps the position
// into the bounds. Unplaced nodes take no part. Pinned nodes push and pull
// others but do not move. The run is a fixed number of iterations with no
// convergence check, and costs O(n²) per iteration.
func Relax(nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node {
	o := opts.withDefaults()
	out := append([]graph.Node(nil), nodes...)

	active := make([]*graph.Node, 0, len(out))
	for i := range out {
		if out[i].Placed {
			active = append(active, &out[i])
		}
	}
	springs := resolveEdges(out, edges)

	for it := 0; it < o.Iterations; it++ {
		repel(active, o)
		attract(springs, o)
		integrate(active, o)
	}
	return out
}

type spring struct{ from, to *graph.Node }

func resolveEdges(nodes []graph.Node, edges []graph.Edge) []spring {
	idx := graph.Index(nodes)
	springs := make([]spring, 0, len(edges))
	for _, e := range edges {
		i, okFrom := idx[e.From]
		j, okTo := idx[e.To]
		if !okFrom || !okTo || !nodes[i].Placed || !nodes[j].Placed {
			continue
		}
		springs = append(springs, spring{&nodes[i], &nodes[j]})
	}
	return springs
}

func repel(nodes []*graph.Node, o Options) {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			n1, n2 := nodes[i], nodes[j]
			dx, dy := n2.X-n1.X, n2.Y-n1.Y
			d := distance(dx, dy)
			if d >= o.Cutoff {
				continue
			}
			f := o.Repulsion / (d * d)
			fx, fy := dx/d*f*o.Step, dy/d*f*o.Step
			n1.VX -= fx
			n1.VY -= fy
			n2.VX += fx
			n2.VY += fy
		}
	}
}

func attract(springs []spring, o Options) {
	for _, s := range springs {
		dx, dy := s.to.X-s.from.X, s.to.Y-s.from.Y
		d := distance(dx, dy)
		f := d * o.Attraction
		fx, fy := dx/d*f, dy/d*f
		s.from.VX += fx
		s.from.VY += fy
		s.to.VX -= fx
		s.to.VY -= fy
	}
}

func integrate(nodes []*graph.Node, o Options) {
	for _, n := range nodes {
		if n.Pinned {
			n.VX, n.VY = 0, 0
			continue
		}
		p := graph.Point{X: n.X + n.VX, Y: n.Y + n.VY}
		n.VX *= o.Damping
		n.VY *= o.Damping
		p = o.Bounds.Clamp(p)
		n.X, n.Y = p.X, p.Y
	}
}

// distance returns the length of (dx, dy), never less than 1.
func distance(dx, dy float64) float64 {
	return math.Max(1, math.Hypot(dx, dy))
}

// Package force refines an initial layout with a small force-directed
// simulation.
//
// Nodes closer than a cutoff distance push each other apart with an
// inverse-square force, and every edge acts as a spring pulling its
// endpoints together. Velocities are damped each iteration and positions
// are clamped into a working rectangle, so nothing drifts off the canvas.
// The aim is a visually untangled picture, not an optimal one.
//
//	nodes := layout.Plan(classify.Group(g.Nodes))
//	nodes = force.Relax(nodes, g.Edges, force.DefaultOptions())
package force

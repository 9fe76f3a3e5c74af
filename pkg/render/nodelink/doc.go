// Package nodelink exports computed layouts as Graphviz node-link diagrams.
//
// # Usage
//
// Convert a layout to DOT, then render it to SVG:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] pins every node with pos="x,y!" so Graphviz keeps the positions
// computed by the layout pipeline instead of laying the graph out again.
// Nodes are filled circles coloured by type, matching the other renderers.
// The DOT source can also be saved and processed with external Graphviz
// tools (use neato -n to keep positions).
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz], which embeds Graphviz
// as WebAssembly, so no system installation is required.
package nodelink

// Package render draws graph scenes onto abstract 2D surfaces.
//
// # Overview
//
// A [Surface] is anything that can stroke lines, fill polygons, circles and
// rectangles, and draw centred text under a translate/scale transform. The
// [sink] subpackage provides raster (PNG), vector (SVG) and terminal cell
// surfaces; the [nodelink] subpackage exports layouts to Graphviz instead.
//
// # Drawing
//
// [Draw] paints one frame of a [viewport.Scene] as seen through a
// [viewport.State]:
//
//   - edges whose endpoints are both visible, with an arrowhead set back
//     from the target node
//   - nodes as circles coloured by type, with a dashed ring on the selected
//     node and a glow and heavier stroke on the hovered or selected node
//   - labels above each node, truncated after 12 characters, on a dark
//     plate when highlighted
//   - a language badge below highlighted nodes
//
// An empty scene paints a loading placeholder instead.
//
// # Render Loop
//
// [Start] redraws a surface every frame until its [Handle] is stopped:
//
//	h := render.Start(ctx, surface, func() (*viewport.Scene, viewport.State) {
//	    return view.Snapshot()
//	})
//	defer h.Stop()
//
// [sink]: github.com/matzehuels/repograph/pkg/render/sink
// [nodelink]: github.com/matzehuels/repograph/pkg/render/nodelink
package render

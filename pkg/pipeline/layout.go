package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/repograph/pkg/classify"
	"github.com/matzehuels/repograph/pkg/force"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/layout"
	"github.com/matzehuels/repograph/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout classifies the graph's nodes, plans the layered placement
// and relaxes it. A nil classifier uses the default rules.
//
// Layout never fails on well-formed input: dangling edges are ignored and
// an empty graph yields an empty layout. The returned nodes are in plan
// order (bands, then side columns, then the overflow grid).
func ComputeLayout(ctx context.Context, g graph.Graph, c *classify.Classifier, opts Options) (graph.Layout, error) {
	opts.SetLayoutDefaults()
	if err := ctx.Err(); err != nil {
		return graph.Layout{}, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(g.Nodes))

	groups := c.Group(g.Nodes)
	nodes := layout.Plan(groups)
	iterations := 0
	if opts.Relaxes() {
		fo := opts.ForceOptions()
		nodes = force.Relax(nodes, g.Edges, fo)
		iterations = fo.Iterations
	}

	l := graph.Layout{
		Width:      graph.CanvasWidth,
		Height:     graph.CanvasHeight,
		Nodes:      nodes,
		Edges:      append([]graph.Edge(nil), g.Edges...),
		Categories: groups.Assignments(),
		Iterations: iterations,
	}

	dur := time.Since(start)
	observability.Pipeline().OnLayoutComplete(ctx, len(nodes), dur, nil)
	opts.Logger.Debug("layout planned",
		"nodes", len(nodes),
		"categories", len(groups),
		"iterations", iterations,
		"duration", dur)
	return l, nil
}

// CategoryCounts tallies the layout's nodes per category name.
func CategoryCounts(l graph.Layout) map[string]int {
	counts := make(map[string]int)
	for _, cat := range l.Categories {
		counts[cat]++
	}
	return counts
}

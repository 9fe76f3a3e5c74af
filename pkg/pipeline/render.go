package pipeline

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/observability"
	"github.com/matzehuels/repograph/pkg/render"
	"github.com/matzehuels/repograph/pkg/render/nodelink"
	"github.com/matzehuels/repograph/pkg/render/sink"
	"github.com/matzehuels/repograph/pkg/viewport"
)

// Render draws l in every requested format. Formats are rendered
// concurrently, each from its own Scene copy onto its own Surface; the
// layout itself is only read.
func Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	dur := time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, dur, err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("rendered formats", "formats", opts.Formats, "duration", dur)
	return artifacts, nil
}

func renderFormat(ctx context.Context, l graph.Layout, format string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG:
		scene, st := FitView(l, opts)
		r := sink.NewRaster(opts.Width, opts.Height, sink.WithScale(opts.Scale))
		render.Draw(r, scene, st)
		return r.PNG()
	case FormatSVG:
		scene, st := FitView(l, opts)
		s := sink.NewSVG(opts.Width, opts.Height)
		render.Draw(s, scene, st)
		return s.Bytes(), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatGraphviz:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed}))
	case FormatJSON:
		return graph.MarshalLayout(l)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// FitView builds the scene for l and a view state that fits the layout
// canvas into the output size, centred. At the default size the view is
// the identity (zoom 1, no offset).
func FitView(l graph.Layout, opts Options) (*viewport.Scene, viewport.State) {
	opts.SetRenderDefaults()
	scene := viewport.FromLayout(l)
	st := viewport.NewState(scene)

	w, h := float64(opts.Width), float64(opts.Height)
	zoom := viewport.ClampZoom(math.Min(w/graph.CanvasWidth, h/graph.CanvasHeight))
	st = st.WithZoom(zoom)
	st.Offset = graph.Point{
		X: (w - graph.CanvasWidth*zoom) / 2,
		Y: (h - graph.CanvasHeight*zoom) / 2,
	}
	st.Filters.Edges = !opts.HideEdges
	return scene, st
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single format) or base path
	formats  string // comma-separated formats
	noCache  bool
	refresh  bool
	rules    string
	detailed bool // language and size in DOT labels
}

// renderCommand creates the render command for generating images.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts
	var (
		width, height int
		scale         float64
		edges         bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json|layout.json]",
		Short: "Render a repository graph to PNG, SVG, DOT or JSON",
		Long: `Render a repository graph to image files.

The input is either a graph description (layout is computed first) or a
layout produced by 'layout'. Formats:

  png       raster image (use --scale for high-DPI output)
  svg       vector image drawn like the interactive view
  dot       Graphviz source with pinned node positions
  graphviz  SVG rendered by Graphviz (neato) from the DOT source
  json      the layout itself`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeJSONFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			opts.Formats = parseFormats(ro.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if cmd.Flags().Changed("width") {
				opts.Width = width
			}
			if cmd.Flags().Changed("height") {
				opts.Height = height
			}
			if cmd.Flags().Changed("scale") {
				opts.Scale = scale
			}
			if cmd.Flags().Changed("edges") {
				opts.HideEdges = !edges
			}
			opts.Detailed = ro.detailed
			opts.Refresh = ro.refresh
			return c.runRender(cmd.Context(), args[0], ro, opts)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, dot, graphviz, json (comma-separated)")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&ro.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&ro.rules, "rules", "", "TOML file with extra classification rules")
	cmd.Flags().BoolVar(&ro.detailed, "detailed", false, "show language and size in DOT labels")
	cmd.Flags().IntVar(&width, "width", pipeline.DefaultWidth, "output width")
	cmd.Flags().IntVar(&height, "height", pipeline.DefaultHeight, "output height")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG pixel ratio")
	cmd.Flags().BoolVar(&edges, "edges", true, "draw edges")

	return cmd
}

// runRender loads the input, lays it out if needed and writes every format.
func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, ro.noCache, ro.rules)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, layoutHit, err := c.loadLayout(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Render complete")
	for _, format := range sortedFormats(opts.Formats) {
		path := outputPath(ro.output, input, format, len(opts.Formats))
		if err := writeOutput(path, artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "format", format, "bytes", len(artifacts[format]))
		printFile(path)
	}
	printStats(len(l.Nodes), len(l.Edges), layoutHit && renderHit)
	prog.done("Rendered " + filepath.Base(input))
	return nil
}

// loadLayout accepts either a layout file or a graph description. Graph
// descriptions are laid out through the runner. The bool reports a layout
// cache hit (always true for a layout file).
func (c *CLI) loadLayout(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (graph.Layout, bool, error) {
	if l, err := graph.ReadLayoutFile(input); err == nil && l.IsLayout() {
		loggerFromContext(ctx).Debug("input is a layout", "file", input, "nodes", len(l.Nodes))
		return l, true, nil
	}

	g, err := runner.Load(ctx, input)
	if err != nil {
		return graph.Layout{}, false, fmt.Errorf("load graph %s: %w", input, err)
	}
	l, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return graph.Layout{}, false, fmt.Errorf("compute layout: %w", err)
	}
	return l, hit, nil
}

// outputPath derives the file for one format. A single format writes to
// output as given; several formats treat output as a base path.
func outputPath(output, input, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	base := basePath(input)
	if output != "" {
		base = basePath(output)
	}
	return base + "." + pipeline.Ext(format)
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// sortedFormats returns formats in the canonical order, deduplicated.
func sortedFormats(formats []string) []string {
	var out []string
	for _, f := range pipeline.ValidFormats {
		if slices.Contains(formats, f) {
			out = append(out, f)
		}
	}
	return out
}

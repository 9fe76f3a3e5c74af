package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		refresh    bool
		rules      string
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a repository graph",
		Long: `Compute node positions for a repository graph.

Nodes are classified by role from their ID and label, placed in horizontal
bands (entry, frontend, backend, services, data), side columns (config,
utilities, tests) and an overflow grid, then relaxed with a short force
simulation. The output is a layout.json that 'render' and 'explore' accept.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeJSONFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			if cmd.Flags().Changed("iterations") {
				opts.Iterations = iterations
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], output, noCache, rules, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&rules, "rules", "", "TOML file with extra classification rules")
	cmd.Flags().IntVar(&iterations, "iterations", pipeline.DefaultIterations, "force relaxation passes (negative disables)")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool, rules string, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, noCache, rules)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := runner.Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	if n := len(g.DanglingEdges()); n > 0 {
		printWarning("%d edges reference missing nodes and will not be drawn", n)
	}

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath(input) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(g.Nodes), len(g.Edges), cacheHit)
	fmt.Fprintln(stdout, categoryTable(pipeline.CategoryCounts(l)))
	printNextStep("Render", appName+" render "+outputPath)
	printNextStep("Explore", appName+" explore "+outputPath)
	return nil
}

// basePath strips the extension and a trailing ".layout" from input.
func basePath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return strings.TrimSuffix(base, ".layout")
}

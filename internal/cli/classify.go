package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repograph/pkg/graph"
)

// classifyCommand creates the classify command for inspecting node roles.
func (c *CLI) classifyCommand() *cobra.Command {
	var (
		rules   string
		asJSON  bool
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "classify [graph.json]",
		Short: "Show the architectural category of every node",
		Long: `Show the architectural category of every node.

Categories decide where a node is placed: entry, frontend, backend, services
and data are horizontal bands; config, utilities and tests are side columns;
everything else goes to the overflow grid. Rules match on lowercased node
IDs and labels and the first matching rule wins.

Extra rules can be supplied as TOML and are tried before the defaults:

  [[rule]]
  category = "backend"
  id_contains = ["handlers/"]
  label_suffix = [".proto"]`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeJSONFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := c.newClassifier(rules)
			if err != nil {
				return err
			}
			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}

			groups := classifier.Group(g.Nodes)
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(groups.Assignments())
			}

			counts := make(map[string]int, len(groups))
			for cat, nodes := range groups {
				counts[cat.String()] = len(nodes)
			}
			if !summary {
				rows := make([]nodeRow, 0, len(g.Nodes))
				for _, n := range g.Nodes {
					rows = append(rows, nodeRow{ID: n.ID, Type: n.Type, Category: classifier.Classify(n)})
				}
				fmt.Fprintln(stdout, nodeTable(rows))
			}
			fmt.Fprintln(stdout, categoryTable(counts))
			return nil
		},
	}

	cmd.Flags().StringVar(&rules, "rules", "", "TOML file with extra classification rules")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print node ID → category as JSON")
	cmd.Flags().BoolVar(&summary, "summary", false, "print only per-category counts")

	return cmd
}

package classify

import (
	"strings"

	"github.com/matzehuels/repograph/pkg/graph"
)

// Classifier evaluates an ordered rule list. The zero value uses
// DefaultRules.
type Classifier struct {
	rules []Rule
}

// New returns a classifier that tries extra before the default rules.
func New(extra ...Rule) *Classifier {
	rules := make([]Rule, 0, len(extra)+len(DefaultRules))
	rules = append(rules, extra...)
	rules = append(rules, DefaultRules...)
	return &Classifier{rules: rules}
}

// Rules returns the rule list in evaluation order.
func (c *Classifier) Rules() []Rule {
	if c == nil || c.rules == nil {
		return DefaultRules
	}
	return c.rules
}

// Classify returns the category of the first rule matching n, or Other.
// It depends only on n.ID and n.Label.
func (c *Classifier) Classify(n graph.Node) Category {
	id, label := strings.ToLower(n.ID), strings.ToLower(n.Label)
	for _, r := range c.Rules() {
		if r.Match(id, label) {
			return r.Category
		}
	}
	return Other
}

// Group classifies every node. Within each group nodes keep their input
// order.
func (c *Classifier) Group(nodes []graph.Node) Groups {
	g := make(Groups)
	for _, n := range nodes {
		cat := c.Classify(n)
		g[cat] = append(g[cat], n)
	}
	return g
}

// Classify classifies n with the default rules.
func Classify(n graph.Node) Category { return (*Classifier)(nil).Classify(n) }

// Group groups nodes with the default rules.
func Group(nodes []graph.Node) Groups { return (*Classifier)(nil).Group(nodes) }

// Groups holds nodes per category.
type Groups map[Category][]graph.Node

// Count returns the total number of grouped nodes.
func (g Groups) Count() int {
	n := 0
	for _, nodes := range g {
		n += len(nodes)
	}
	return n
}

// Assignments maps each node ID to its category name.
func (g Groups) Assignments() map[string]string {
	out := make(map[string]string, g.Count())
	for cat, nodes := range g {
		for _, n := range nodes {
			out[n.ID] = cat.String()
		}
	}
	return out
}

package classify

import (
	"strings"

	"github.com/matzehuels/repograph/pkg/graph"
)

// Rule assigns Category to nodes matching any of its patterns. Patterns
// are compared against the lower-cased node ID (a path proxy) and label.
// A rule with no patterns never matches.
type Rule struct {
	Category      Category
	IDContains    []string
	LabelContains []string
	LabelEquals   []string
	LabelSuffix   []string
}

// Match reports whether the rule applies to a node with the given
// lower-cased id and label.
func (r Rule) Match(id, label string) bool {
	for _, s := range r.LabelEquals {
		if label == s {
			return true
		}
	}
	for _, s := range r.LabelContains {
		if strings.Contains(label, s) {
			return true
		}
	}
	for _, s := range r.LabelSuffix {
		if strings.HasSuffix(label, s) {
			return true
		}
	}
	for _, s := range r.IDContains {
		if strings.Contains(id, s) {
			return true
		}
	}
	return false
}

// MatchNode is Match applied to n.
func (r Rule) MatchNode(n graph.Node) bool {
	return r.Match(strings.ToLower(n.ID), strings.ToLower(n.Label))
}

// DefaultRules is the built-in rule table, in priority order.
var DefaultRules = []Rule{
	{
		Category:      Entry,
		LabelContains: []string{"main", "index", "__init__"},
		LabelEquals:   []string{"app"},
		IDContains:    []string{"entry"},
	},
	{
		Category:    Frontend,
		IDContains:  []string{"frontend", "components", "views", "ui"},
		LabelSuffix: []string{".tsx", ".jsx", ".vue"},
	},
	{
		Category:      Backend,
		IDContains:    []string{"backend", "api", "routes", "controllers"},
		LabelContains: []string{"router", "handler"},
	},
	{
		Category:      Services,
		IDContains:    []string{"services", "business", "logic"},
		LabelContains: []string{"service"},
	},
	{
		Category:      Data,
		IDContains:    []string{"models", "database", "schema", "entities"},
		LabelContains: []string{"model", "db"},
	},
	{
		Category:      Utilities,
		IDContains:    []string{"utils", "helpers", "lib"},
		LabelContains: []string{"util", "helper"},
	},
	{
		Category:      Config,
		LabelContains: []string{"config", "settings"},
		LabelSuffix:   []string{".json", ".yaml", ".yml", ".toml", ".xml", ".properties"},
	},
	{
		Category:      Tests,
		IDContains:    []string{"test", "spec"},
		LabelContains: []string{"test_", ".test."},
	},
}

// Package classify assigns graph nodes to architectural categories.
//
// Classification is a heuristic over the node label and ID (the ID is
// usually a repository path). Rules are plain data evaluated in order and
// the first match wins, so a node labelled "main.py" under a tests/
// directory is still an [Entry] node. Nodes that match nothing fall back
// to [Other]. Misclassification is an accepted tradeoff, not an error.
//
// Projects can prepend their own rules from a TOML file:
//
//	[[rule]]
//	category = "backend"
//	id_contains = ["gateway"]
//
//	[[rule]]
//	category = "config"
//	label_suffix = [".ini"]
//
// See [LoadRules] and [NewFromFile].
package classify

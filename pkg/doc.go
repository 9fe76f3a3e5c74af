// Package pkg holds the libraries behind repograph.
//
// # Overview
//
// Repograph draws repository architecture graphs. An analysis backend
// describes a repository as nodes (the repository, its directories and
// files) and edges (contains, imports, calls). Repograph classifies every
// node by architectural role, plans a layered picture from those roles,
// relaxes it with a short force simulation and draws it, either once to a
// file or continuously in an interactive view.
//
// # Data Flow
//
//	graph.json (analysis result)
//	         ↓
//	    [classify] role per node (entry, frontend, backend, ...)
//	         ↓
//	    [layout] bands, side columns, overflow grid
//	         ↓
//	    [force] bounded relaxation
//	         ↓
//	    [viewport] scene + interaction state
//	         ↓
//	    [render] frames on PNG, SVG, terminal or Graphviz surfaces
//
// [pipeline] ties these steps together and caches layouts and rendered
// artifacts through [cache].
//
// # Quick Start
//
//	g, _ := graph.ReadGraphFile("graph.json")
//	l, _ := pipeline.ComputeLayout(ctx, g, classify.New(), pipeline.Options{})
//	out, _ := pipeline.Render(ctx, l, pipeline.Options{Formats: []string{"svg"}})
//	os.WriteFile("graph.svg", out["svg"], 0o644)
//
// # Supporting Packages
//
// [config] loads repograph.yaml and REPOGRAPH_* environment overrides.
// [errors] defines coded errors shared by every package.
// [observability] exposes hooks for pipeline, cache and frame events.
// [buildinfo] carries version information set at build time.
package pkg

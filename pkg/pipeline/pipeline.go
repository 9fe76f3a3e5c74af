// Package pipeline runs the repograph layout and render pipeline.
//
// The pipeline has three stages that can be run together or on their own:
//
//  1. Load: decode and validate a graph description
//  2. Layout: classify nodes, plan the layered placement and relax it
//  3. Render: draw the layout into one or more output formats
//
// Layout and rendering are deterministic, so a [Runner] caches both behind
// content-derived keys.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Run individual stages:
//
//	l, err := pipeline.ComputeLayout(ctx, g, classifier, opts)
//	artifacts, err := pipeline.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repograph/pkg/cache"
	errs "github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/force"
	"github.com/matzehuels/repograph/pkg/graph"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultIterations is the number of relaxation passes.
	DefaultIterations = 30

	// DefaultWidth and DefaultHeight are the logical output size. They match
	// the layout canvas, so the default render is drawn at 1:1.
	DefaultWidth  = int(graph.CanvasWidth)
	DefaultHeight = int(graph.CanvasHeight)

	// DefaultScale is the raster device pixel ratio.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatPNG      = "png"
	FormatSVG      = "svg"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz" // SVG laid out by Graphviz neato from pinned DOT
	FormatJSON     = "json"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatPNG, FormatSVG, FormatDOT, FormatGraphviz, FormatJSON}

// Ext returns the file extension for format.
func Ext(format string) string {
	if format == FormatGraphviz {
		return "gv.svg"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures layout and rendering.
type Options struct {
	// Layout options. Iterations < 0 skips relaxation.
	Iterations int `json:"iterations,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Width     int      `json:"width,omitempty"`
	Height    int      `json:"height,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	HideEdges bool     `json:"hide_edges,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"` // language and size in DOT labels

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errs.ValidateFormat(f, ValidFormats); err != nil {
			return err
		}
	}
	return nil
}

// SetLayoutDefaults fills unset layout options.
func (o *Options) SetLayoutDefaults() {
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies render defaults and validates formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ForceOptions returns relaxation options for these settings.
func (o *Options) ForceOptions() force.Options {
	f := force.DefaultOptions()
	if o.Iterations > 0 {
		f.Iterations = o.Iterations
	}
	return f
}

// Relaxes reports whether force relaxation runs. A negative iteration count
// keeps the planned positions as they are.
func (o *Options) Relaxes() bool { return o.Iterations >= 0 }

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(rulesHash string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Iterations: o.Iterations, RulesHash: rulesHash}
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Width:     o.Width,
		Height:    o.Height,
		Scale:     o.Scale,
		ShowEdges: !o.HideEdges,
		Detailed:  o.Detailed,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	GraphHash string
	Layout    graph.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Categories map[string]int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // every requested artifact came from cache
}

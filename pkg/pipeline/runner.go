package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repograph/pkg/cache"
	"github.com/matzehuels/repograph/pkg/classify"
	"github.com/matzehuels/repograph/pkg/graph"
	"github.com/matzehuels/repograph/pkg/observability"
)

// Cache lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state: multiple goroutines can use the same
// Runner with different graphs and options.
type Runner struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Classifier *classify.Classifier
	Logger     *log.Logger
	TTL        time.Duration // zero uses TTLLayout and TTLArtifact
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil classifier uses the default rules.
func NewRunner(c cache.Cache, keyer cache.Keyer, classifier *classify.Classifier, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:      cache.WithHooks(c),
		Keyer:      keyer,
		Classifier: classifier,
		Logger:     logger,
	}
}

// Load reads and validates a graph description file.
func (r *Runner) Load(ctx context.Context, path string) (graph.Graph, error) {
	g, err := graph.ReadGraphFile(path)
	observability.Pipeline().OnLoad(ctx, path, len(g.Nodes), len(g.Edges), err)
	if err != nil {
		return graph.Graph{}, err
	}
	if dangling := g.DanglingEdges(); len(dangling) > 0 {
		r.Logger.Debug("graph has dangling edges", "count", len(dangling))
	}
	return g, nil
}

// Execute runs layout and render with caching.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}
	if data, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)

	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Categories = CategoryCounts(l)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and reports
// whether it came from the cache.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return graph.Layout{}, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	key := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts(r.rulesHash()))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				return cached, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
	}

	l, err := ComputeLayout(ctx, g, r.Classifier, opts)
	if err != nil {
		return graph.Layout{}, false, err
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(TTLLayout)); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		}
	}
	return l, false, nil
}

// ComputeLayout is ComputeLayoutWithCacheInfo without the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	return l, err
}

// RenderWithCacheInfo renders artifacts with caching and reports whether
// every one came from the cache. Only the formats that missed are rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, l, renderOpts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(TTLArtifact)); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// rulesHash identifies the classifier's rule set in layout keys.
func (r *Runner) rulesHash() string {
	data, err := json.Marshal(r.Classifier.Rules())
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL != 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

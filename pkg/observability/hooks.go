// Package observability lets callers watch the layout pipeline, the cache
// and render loops without the libraries importing a logging or metrics
// backend. Hooks default to no-ops; the CLI installs a debug logger.
//
// # Usage
//
// Install hooks before running the pipeline. [Register] picks up every
// hook interface a value implements:
//
//	observability.Register(&debugHooks{logger})
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, nodeCount)
//	// ... classify, plan, relax ...
//	observability.Pipeline().OnLayoutComplete(ctx, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the layout and export pipeline.
type PipelineHooks interface {
	OnLoad(ctx context.Context, source string, nodeCount, edgeCount int, err error)

	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	// OnCacheSet reports a write of size bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Frame Hooks
// =============================================================================

// FrameHooks receives events from interactive render loops.
type FrameHooks interface {
	// OnFrame records one drawn frame.
	OnFrame(ctx context.Context, nodes, edges int, duration time.Duration)

	// OnLoopStop records that a render loop was torn down.
	OnLoopStop(ctx context.Context, frames int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoad(context.Context, string, int, int, error)                  {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopFrameHooks is a no-op implementation of FrameHooks.
type NoopFrameHooks struct{}

func (NoopFrameHooks) OnFrame(context.Context, int, int, time.Duration) {}
func (NoopFrameHooks) OnLoopStop(context.Context, int)                  {}

// =============================================================================
// Registry
// =============================================================================

// registry holds the active hooks. Lookups happen on every frame, so reads
// take the read lock only.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	frame    FrameHooks
}

var hooks = registry{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	frame:    NoopFrameHooks{},
}

// Register installs h for every hook interface it implements and reports
// how many it matched. A type implementing all three replaces all three.
func Register(h any) int {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	n := 0
	if p, ok := h.(PipelineHooks); ok {
		hooks.pipeline = p
		n++
	}
	if c, ok := h.(CacheHooks); ok {
		hooks.cache = c
		n++
	}
	if f, ok := h.(FrameHooks); ok {
		hooks.frame = f
		n++
	}
	return n
}

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		hooks.mu.Lock()
		hooks.pipeline = h
		hooks.mu.Unlock()
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		hooks.mu.Lock()
		hooks.cache = h
		hooks.mu.Unlock()
	}
}

// SetFrameHooks registers frame hooks. Nil is ignored.
func SetFrameHooks(h FrameHooks) {
	if h != nil {
		hooks.mu.Lock()
		hooks.frame = h
		hooks.mu.Unlock()
	}
}

// Pipeline returns the active pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the active cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Frame returns the active frame hooks.
func Frame() FrameHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.frame
}

// Reset restores the no-op hooks.
func Reset() {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.pipeline = NoopPipelineHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.frame = NoopFrameHooks{}
}

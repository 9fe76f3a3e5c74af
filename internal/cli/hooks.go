package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/repograph/pkg/observability"
)

// logHooks writes observability events to the debug log.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.FrameHooks    = (*logHooks)(nil)
)

func (h *logHooks) OnLoad(_ context.Context, source string, nodes, edges int, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("loaded graph", "source", source, "nodes", nodes, "edges", edges)
}

func (h *logHooks) OnLayoutStart(_ context.Context, nodes int) {
	h.logger.Debug("layout started", "nodes", nodes)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, nodes int, d time.Duration, err error) {
	h.logger.Debug("layout finished", "nodes", nodes, "duration", d, "error", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render finished", "formats", formats, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// OnFrame is silent: at 60 fps it would drown every other line.
func (h *logHooks) OnFrame(context.Context, int, int, time.Duration) {}

func (h *logHooks) OnLoopStop(_ context.Context, frames int) {
	h.logger.Debug("render loop stopped", "frames", frames)
}

package render

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matzehuels/repograph/pkg/observability"
	"github.com/matzehuels/repograph/pkg/viewport"
)

// DefaultFrameInterval is one frame at 60 fps.
const DefaultFrameInterval = time.Second / 60

// Provider returns the scene and state to draw. It is called once per
// frame from the loop goroutine and must be safe to call concurrently with
// whatever mutates the scene and state.
type Provider func() (*viewport.Scene, viewport.State)

// LoopOption configures Start.
type LoopOption func(*loop)

type loop struct {
	interval time.Duration
	renderer *Renderer
	after    func(Stats)
}

// WithInterval sets the time between frames.
func WithInterval(d time.Duration) LoopOption {
	return func(l *loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithRenderer draws frames with r instead of the default renderer.
func WithRenderer(r *Renderer) LoopOption {
	return func(l *loop) {
		if r != nil {
			l.renderer = r
		}
	}
}

// WithAfterFrame calls fn after every frame, on the loop goroutine. Sinks
// that present their buffer somewhere (a terminal, a file) hook in here.
func WithAfterFrame(fn func(Stats)) LoopOption {
	return func(l *loop) { l.after = fn }
}

// Handle controls a running render loop.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	frames atomic.Int64
}

// Start redraws s every frame until the handle is stopped or ctx is
// cancelled. The first frame is drawn immediately. Only the loop
// goroutine touches s while it runs.
func Start(ctx context.Context, s Surface, provide Provider, opts ...LoopOption) *Handle {
	l := loop{interval: DefaultFrameInterval, renderer: NewRenderer()}
	for _, opt := range opts {
		opt(&l)
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go h.run(ctx, s, provide, l)
	return h
}

func (h *Handle) run(ctx context.Context, s Surface, provide Provider, l loop) {
	defer close(h.done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		start := time.Now()
		scene, st := provide()
		stats := l.renderer.Draw(s, scene, st)
		h.frames.Add(1)
		if l.after != nil {
			l.after(stats)
		}
		observability.Frame().OnFrame(ctx, stats.Nodes, stats.Edges, time.Since(start))

		select {
		case <-ctx.Done():
			observability.Frame().OnLoopStop(context.WithoutCancel(ctx), int(h.frames.Load()))
			return
		case <-ticker.C:
		}
	}
}

// Stop cancels the loop and waits for the in-flight frame to finish. No
// frame is drawn after Stop returns. Stop is safe to call more than once.
func (h *Handle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed when the loop has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Frames returns the number of frames drawn so far.
func (h *Handle) Frames() int { return int(h.frames.Load()) }

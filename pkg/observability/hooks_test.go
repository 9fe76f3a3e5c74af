package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoad(ctx, "graph.json", 10, 12, nil)
	p.OnLayoutStart(ctx, 10)
	p.OnLayoutComplete(ctx, 10, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"png", "svg"})
	p.OnRenderComplete(ctx, []string{"png", "svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	f := NoopFrameHooks{}
	f.OnFrame(ctx, 10, 12, time.Millisecond)
	f.OnLoopStop(ctx, 60)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Frame().(NoopFrameHooks); !ok {
		t.Error("Frame() should return NoopFrameHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customFrame := &testFrameHooks{}
	SetFrameHooks(customFrame)
	if Frame() != customFrame {
		t.Error("SetFrameHooks should set custom hooks")
	}

	Reset()
	if _, ok := Frame().(NoopFrameHooks); !ok {
		t.Error("Reset() should restore NoopFrameHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testFrameHooks{}
	SetFrameHooks(custom)
	SetFrameHooks(nil)

	if Frame() != custom {
		t.Error("SetFrameHooks(nil) should be ignored")
	}
}

func TestRegisterMatchesImplementedHooks(t *testing.T) {
	Reset()
	defer Reset()

	if n := Register(&testFrameHooks{}); n != 1 {
		t.Errorf("Register(frame hooks) matched %d interfaces, want 1", n)
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Register(frame hooks) should leave pipeline hooks alone")
	}

	all := &allHooks{}
	if n := Register(all); n != 3 {
		t.Errorf("Register(all hooks) matched %d interfaces, want 3", n)
	}
	if Pipeline() != all || Cache() != all || Frame() != all {
		t.Error("Register should install a value for every interface it implements")
	}

	if n := Register(struct{}{}); n != 0 {
		t.Errorf("Register(struct{}) matched %d interfaces, want 0", n)
	}
}

type allHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopFrameHooks
	id int // non-zero size so pointers are distinct
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testFrameHooks struct{ NoopFrameHooks }

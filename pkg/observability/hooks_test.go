package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnEncodeStart(ctx, 22, "medium")
	p.OnEncodeComplete(ctx, 25, time.Millisecond, nil)
	p.OnLayoutStart(ctx, 25)
	p.OnLayoutComplete(ctx, 577, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, KeyGrid)
	c.OnCacheMiss(ctx, KeyLayout)
	c.OnCacheSet(ctx, KeyArtifact, 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	counters := &Counters{}
	SetPipelineHooks(counters)
	SetCacheHooks(counters)
	if Pipeline() != counters {
		t.Error("SetPipelineHooks should set custom hooks")
	}
	if Cache() != counters {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &Counters{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := &Counters{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnEncodeComplete(ctx, 21, time.Millisecond, nil)
			c.OnLayoutComplete(ctx, 393, time.Millisecond, nil)
			c.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
			c.OnCacheMiss(ctx, KeyGrid)
			c.OnCacheSet(ctx, KeyGrid, 100)
		}()
	}
	wg.Wait()
	c.OnRenderComplete(ctx, []string{"pdf"}, time.Millisecond, errors.New("no rsvg-convert"))
	c.OnCacheHit(ctx, KeyArtifact)

	want := Snapshot{
		Encodes:     10,
		Layouts:     10,
		Renders:     10,
		Failures:    1,
		CacheHits:   1,
		CacheMisses: 10,
		CacheSets:   10,
		BytesCached: 1000,
	}
	if got := c.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

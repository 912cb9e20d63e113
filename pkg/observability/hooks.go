// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about pipeline stages and cache operations.
//
// # Usage
//
// Register hooks at application startup:
//
//	counters := &observability.Counters{}
//	observability.SetPipelineHooks(counters)
//	observability.SetCacheHooks(counters)
//
// The pipeline runner emits events around each stage:
//
//	observability.Pipeline().OnEncodeStart(ctx, len(payload), level)
//	// ... encode ...
//	observability.Pipeline().OnEncodeComplete(ctx, modules, duration, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Cache key types reported to CacheHooks.
const (
	KeyGrid     = "grid"
	KeyLayout   = "layout"
	KeyArtifact = "artifact"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the encode → layout → render pipeline.
// Complete events fire for cache hits too, with the time the lookup took.
type PipelineHooks interface {
	OnEncodeStart(ctx context.Context, payloadBytes int, level string)
	OnEncodeComplete(ctx context.Context, modules int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, modules int)
	OnLayoutComplete(ctx context.Context, shapes int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnEncodeStart(context.Context, int, string)                       {}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Counters
// =============================================================================

// Counters tallies pipeline and cache events. It implements both hook
// interfaces and is safe for concurrent use.
type Counters struct {
	encodes, layouts, renders atomic.Int64
	failures                  atomic.Int64
	hits, misses, sets        atomic.Int64
	bytesCached               atomic.Int64
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Encodes     int64 `json:"encodes"`
	Layouts     int64 `json:"layouts"`
	Renders     int64 `json:"renders"`
	Failures    int64 `json:"failures"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	CacheSets   int64 `json:"cache_sets"`
	BytesCached int64 `json:"bytes_cached"`
}

func (c *Counters) OnEncodeStart(context.Context, int, string) {}
func (c *Counters) OnLayoutStart(context.Context, int)         {}
func (c *Counters) OnRenderStart(context.Context, []string)    {}

func (c *Counters) OnEncodeComplete(_ context.Context, _ int, _ time.Duration, err error) {
	c.complete(&c.encodes, err)
}

func (c *Counters) OnLayoutComplete(_ context.Context, _ int, _ time.Duration, err error) {
	c.complete(&c.layouts, err)
}

func (c *Counters) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	c.complete(&c.renders, err)
}

func (c *Counters) complete(n *atomic.Int64, err error) {
	if err != nil {
		c.failures.Add(1)
		return
	}
	n.Add(1)
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.hits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.misses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.sets.Add(1)
	c.bytesCached.Add(int64(size))
}

// Snapshot returns the current counts.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Encodes:     c.encodes.Load(),
		Layouts:     c.layouts.Load(),
		Renders:     c.renders.Load(),
		Failures:    c.failures.Load(),
		CacheHits:   c.hits.Load(),
		CacheMisses: c.misses.Load(),
		CacheSets:   c.sets.Load(),
		BytesCached: c.bytesCached.Load(),
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}

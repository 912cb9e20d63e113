package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrdots/pkg/cache"
	"github.com/matzehuels/qrdots/pkg/grid"
	"github.com/matzehuels/qrdots/pkg/layout"
	"github.com/matzehuels/qrdots/pkg/observability"
	"github.com/matzehuels/qrdots/pkg/qr"
)

// Runner encapsulates pipeline execution with caching.
// The CLI and the preview server both use it.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete encode → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Encode
	encodeStart := time.Now()
	g, encodeHit, err := r.EncodeWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Grid = g
	result.GridHash = gridHash(g)
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.Stats.Modules = g.Width()
	result.Stats.Version = qr.Version(g.Width())
	result.CacheInfo.EncodeHit = encodeHit

	r.Logger.Info("encoded payload",
		"modules", g.Width(),
		"version", result.Stats.Version,
		"level", opts.Level,
		"duration", result.Stats.EncodeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	counts := l.Counts()
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Shapes = len(l.Shapes)
	result.Stats.Circles = counts.Circles
	result.Stats.Squares = counts.Squares
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"shapes", len(l.Shapes),
		"circles", counts.Circles,
		"squares", counts.Squares,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
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
		"duration", result.Stats.RenderTime)

	return result, nil
}

// EncodeWithCacheInfo encodes the payload with caching and returns cache hit info.
func (r *Runner) EncodeWithCacheInfo(ctx context.Context, opts Options) (g grid.Grid, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForEncode(); err != nil {
		return grid.Grid{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnEncodeStart(ctx, len(opts.Payload), opts.Level)
	start := time.Now()
	defer func() { hooks.OnEncodeComplete(ctx, g.Width(), time.Since(start), err) }()

	cacheKey := r.Keyer.GridKey([]byte(opts.Payload), opts.GridKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, ok := r.getCache(ctx, cacheKey, observability.KeyGrid); ok {
			if cached, err := grid.Unmarshal(data); err == nil {
				return cached, true, nil
			}
		}
	}

	g, err = Encode(opts)
	if err != nil {
		return grid.Grid{}, false, err
	}

	if data, err := grid.Marshal(g); err == nil {
		r.setCache(ctx, cacheKey, observability.KeyGrid, data, cache.TTLGrid)
	}
	return g, false, nil
}

// Encode is a convenience wrapper that calls EncodeWithCacheInfo and discards the cache hit info.
func (r *Runner) Encode(ctx context.Context, opts Options) (grid.Grid, error) {
	g, _, err := r.EncodeWithCacheInfo(ctx, opts)
	return g, err
}

// GenerateLayoutWithCacheInfo generates a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, g grid.Grid, opts Options) (l layout.Layout, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.Width())
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, len(l.Shapes), time.Since(start), err) }()

	cacheKey := r.Keyer.LayoutKey(gridHash(g), opts.LayoutKeyOpts())

	if data, ok := r.getCache(ctx, cacheKey, observability.KeyLayout); ok {
		if doc, err := layout.UnmarshalDocument(data); err == nil {
			if cached, err := layout.Parse(doc); err == nil {
				return cached, true, nil
			}
		}
		// If deserialization fails, fall through to recompute
	}

	l, err = GenerateLayout(g, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := layout.MarshalDocument(l.Export()); err == nil {
		r.setCache(ctx, cacheKey, observability.KeyLayout, data, cache.TTLLayout)
	}
	return l, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, g grid.Grid, opts Options) (layout.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit is reported only when every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	// The overlay bytes are part of the artifact key.
	if err := opts.LoadOverlay(ctx); err != nil {
		return nil, false, err
	}

	layoutData, err := layout.MarshalDocument(l.Export())
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, ok := r.getCache(ctx, cacheKey, observability.KeyArtifact)
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.setCache(ctx, cacheKey, observability.KeyArtifact, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
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

// getCache looks up an entry. Lookup failures count as misses.
func (r *Runner) getCache(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// setCache stores an entry. Cache failures are logged and otherwise ignored.
func (r *Runner) setCache(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func gridHash(g grid.Grid) string {
	data, _ := grid.Marshal(g)
	return cache.Hash(data)
}

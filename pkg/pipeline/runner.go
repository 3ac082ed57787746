package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"

	"github.com/matzehuels/linetrace/pkg/cache"
	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete trace → refine → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, img []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		MaskHash:  cache.Hash(img),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Trace
	traceStart := time.Now()
	traced, traceHit, err := r.TraceWithCacheInfo(ctx, img, opts)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	result.Width = traced.Width
	result.Height = traced.Height
	result.Report.Bridges = traced.Bridges
	result.Stats.TraceTime = time.Since(traceStart)
	result.Stats.TracedPaths = len(traced.Paths)
	result.Stats.TracedPoints = traced.Paths.TotalPoints()
	result.CacheInfo.TraceHit = traceHit

	r.Logger.Info("traced mask",
		"paths", len(traced.Paths),
		"bridges", len(traced.Bridges),
		"duration", result.Stats.TraceTime)

	// Stage 2: Refine
	refineStart := time.Now()
	refined, refineHit, err := r.RefineWithCacheInfo(ctx, traced.Paths, opts)
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}
	result.Paths = refined.Paths
	result.Report.Joins = refined.Joins
	result.Stats.RefineTime = time.Since(refineStart)
	result.Stats.PathCount = len(refined.Paths)
	result.Stats.PointCount = refined.Paths.TotalPoints()
	result.CacheInfo.RefineHit = refineHit

	r.Logger.Info("refined paths",
		"paths", len(refined.Paths),
		"joins", len(refined.Joins),
		"duration", result.Stats.RefineTime)
	r.logPathStats(refined.Paths)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, refined.Paths, traced.Width, traced.Height, opts)
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

// TraceWithCacheInfo traces a mask with caching and returns cache hit info.
func (r *Runner) TraceWithCacheInfo(ctx context.Context, img []byte, opts Options) (Traced, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForTrace(); err != nil {
		return Traced{}, false, err
	}

	start := time.Now()
	observability.Pipeline().OnTraceStart(ctx, opts.Source)

	// Compute cache key from the mask content
	maskHash := cache.Hash(img)
	cacheKey := r.Keyer.TraceKey(maskHash, opts.TraceKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Traced
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "trace")
				observability.Pipeline().OnTraceComplete(ctx, opts.Source, len(cached.Paths), time.Since(start), nil)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "trace")
	}

	// Trace
	traced, err := Trace(img, opts)
	if err != nil {
		observability.Pipeline().OnTraceComplete(ctx, opts.Source, 0, time.Since(start), err)
		return Traced{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(traced); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTrace)
		observability.Cache().OnCacheSet(ctx, "trace", len(data))
	}

	observability.Pipeline().OnTraceComplete(ctx, opts.Source, len(traced.Paths), time.Since(start), nil)
	return traced, false, nil // Cache miss
}

// Trace is a convenience wrapper that calls TraceWithCacheInfo and discards the cache hit info.
func (r *Runner) Trace(ctx context.Context, img []byte, opts Options) (Traced, error) {
	traced, _, err := r.TraceWithCacheInfo(ctx, img, opts)
	return traced, err
}

// RefineWithCacheInfo refines traced paths with caching and returns cache hit info.
func (r *Runner) RefineWithCacheInfo(ctx context.Context, paths geometry.Collection, opts Options) (Refined, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRefine(); err != nil {
		return Refined{}, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRefineStart(ctx, opts.Filters, len(paths))

	// Key on the input paths so a changed trace invalidates refine entries
	pathsHash := hashPaths(paths)
	cacheKey := r.Keyer.RefineKey(pathsHash, opts.RefineKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Refined
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "refine")
				observability.Pipeline().OnRefineComplete(ctx, opts.Filters, time.Since(start), nil)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "refine")
	}

	// Refine
	refined, err := Refine(ctx, paths, opts)
	if err != nil {
		observability.Pipeline().OnRefineComplete(ctx, opts.Filters, time.Since(start), err)
		return Refined{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(refined); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRefine)
		observability.Cache().OnCacheSet(ctx, "refine", len(data))
	}

	observability.Pipeline().OnRefineComplete(ctx, opts.Filters, time.Since(start), nil)
	return refined, false, nil // Cache miss
}

// Refine is a convenience wrapper that calls RefineWithCacheInfo and discards the cache hit info.
func (r *Runner) Refine(ctx context.Context, paths geometry.Collection, opts Options) (Refined, error) {
	refined, _, err := r.RefineWithCacheInfo(ctx, paths, opts)
	return refined, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, paths geometry.Collection, width, height int, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	// Key on the refined paths so a changed refine invalidates artifacts
	pathsHash := hashPaths(paths)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(pathsHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered, err := Render(paths, width, height, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(pathsHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, paths geometry.Collection, width, height int, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, paths, width, height, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// logPathStats logs the refined path length distribution at debug level.
func (r *Runner) logPathStats(paths geometry.Collection) {
	if len(paths) == 0 {
		return
	}
	lengths := make([]float64, len(paths))
	for i, p := range paths {
		lengths[i] = p.Length()
	}
	shortest, _ := stats.Min(lengths)
	median, _ := stats.Median(lengths)
	p95, _ := stats.Percentile(lengths, 95)
	longest, _ := stats.Max(lengths)
	r.Logger.Debug("path length distribution",
		"paths", len(paths),
		"min", shortest,
		"median", median,
		"p95", p95,
		"max", longest)
}

// hashPaths produces the content hash used to chain stage cache keys.
func hashPaths(paths geometry.Collection) string {
	data, _ := json.Marshal(paths)
	return cache.Hash(data)
}

// Package pipeline provides the core vectorization pipeline for linetrace.
//
// This package implements the complete trace → refine → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Trace: Decode the mask image and extract stroke paths from its foreground
//  2. Refine: Run the filter chain over the paths and stitch stroke fragments
//  3. Render: Generate output in various formats (SVG, EPS, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Filters: "smooth=7,chaikin=3",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, maskPNG, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Trace only
//	traced, err := runner.Trace(ctx, maskPNG, opts)
//
//	// Refine existing paths
//	refined, err := runner.Refine(ctx, traced.Paths, opts)
//
//	// Render refined paths
//	artifacts, err := runner.Render(ctx, refined.Paths, traced.Width, traced.Height, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linetrace/pkg/cache"
	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/filter"
	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/merge"
	"github.com/matzehuels/linetrace/pkg/raster"
	"github.com/matzehuels/linetrace/pkg/trace"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultMinPoints is the noise-rejection threshold: traced components
	// with fewer points are dropped.
	DefaultMinPoints = trace.DefaultMinPoints

	// DefaultBridgeGap is the largest endpoint gap in pixels the bridger
	// closes. Negative disables bridging.
	DefaultBridgeGap = trace.DefaultMaxGap

	// DefaultMergeTolerance is the endpoint gap in pixels below which two
	// refined paths are stitched into one. Negative disables merging.
	DefaultMergeTolerance = merge.DefaultTolerance

	// DefaultThreshold is the gray cutoff for mask binarization (0-255).
	DefaultThreshold = raster.DefaultThreshold

	// DefaultStrokeWidth is the stroke width in pixels used by all sinks.
	DefaultStrokeWidth = 2.0

	// DefaultFilters is the refine chain applied when none is given. The
	// order matters: decimation first so smoothing sees evenly spaced
	// points, corner cutting before simplification so the reduction runs
	// on the rounded curve.
	DefaultFilters = "decimate=2,smooth=5,chaikin=2,simplify=1.2"
)

// DefaultTraversal is the default flood-fill order.
const DefaultTraversal = string(trace.DepthFirst)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatEPS  = "eps"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatEPS:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidTraversals is the set of supported flood-fill orders.
var ValidTraversals = map[string]bool{
	string(trace.DepthFirst):   true,
	string(trace.BreadthFirst): true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the vectorization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Trace options
	MinPoints int     `json:"min_points,omitempty"`
	BridgeGap float64 `json:"bridge_gap,omitempty"` // negative disables bridging
	Traversal string  `json:"traversal,omitempty"`
	Threshold int     `json:"threshold,omitempty"`
	Invert    bool    `json:"invert,omitempty"`

	// Refine options
	Filters        string  `json:"filters,omitempty"`
	MergeTolerance float64 `json:"merge_tolerance,omitempty"` // negative disables merging
	Workers        int     `json:"workers,omitempty"`         // 0 means GOMAXPROCS

	// Render options
	Formats     []string `json:"formats,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"`

	// Refresh bypasses cached stage results and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Source string      `json:"-"` // input provenance for logs and hooks
	Preset string      `json:"-"` // preset name the options came from
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Paths is the final refined collection.
	Paths geometry.Collection

	// Width and Height are the mask dimensions in pixels.
	Width  int
	Height int

	// MaskHash is the content hash of the mask image.
	MaskHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Report records the repairs applied while tracing and refining.
	Report Report

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Report records the gap bridges and endpoint joins a run applied, for the
// stitch-graph debug view.
type Report struct {
	Bridges []trace.BridgePair `json:"bridges,omitempty"`
	Joins   []merge.Join       `json:"joins,omitempty"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TracedPaths  int // paths straight off the tracer
	TracedPoints int
	PathCount    int // paths after refining
	PointCount   int
	TraceTime    time.Duration
	RefineTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TraceHit  bool // Whether traced paths came from cache
	RefineHit bool // Whether refined paths came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, eps, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTraversal checks that a flood-fill order is valid.
func ValidateTraversal(traversal string) error {
	if !ValidTraversals[traversal] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid traversal: %q (must be one of: dfs, bfs)", traversal)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForTrace(); err != nil {
		return err
	}
	if err := o.ValidateForRefine(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForTrace checks fields and applies defaults for tracing.
func (o *Options) ValidateForTrace() error {
	if o.Threshold < 0 || o.Threshold > 255 {
		return errors.New(errors.ErrCodeInvalidMask, "threshold must be 0-255, got %d", o.Threshold)
	}
	if o.Traversal != "" {
		if err := ValidateTraversal(o.Traversal); err != nil {
			return err
		}
	}

	// Trace defaults
	if o.MinPoints == 0 {
		o.MinPoints = DefaultMinPoints
	}
	if o.BridgeGap == 0 {
		o.BridgeGap = DefaultBridgeGap
	}
	if o.Traversal == "" {
		o.Traversal = DefaultTraversal
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRefineDefaults sets default values for refining.
func (o *Options) SetRefineDefaults() {
	if o.Filters == "" {
		o.Filters = DefaultFilters
	}
	if o.MergeTolerance == 0 {
		o.MergeTolerance = DefaultMergeTolerance
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRefine validates and sets defaults for refining.
func (o *Options) ValidateForRefine() error {
	o.SetRefineDefaults()
	_, err := filter.Parse(o.Filters)
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = DefaultStrokeWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.Formats = normalizeFormats(o.Formats)
	o.SetRenderDefaults()
	if o.StrokeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "stroke width must be positive, got %g", o.StrokeWidth)
	}
	return ValidateFormats(o.Formats)
}

// normalizeFormats lowercases, trims, and deduplicates a format list so cache
// keys and artifact map keys agree regardless of how the caller spelled them.
func normalizeFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// TraceKeyOpts returns cache key options for the trace stage.
func (o *Options) TraceKeyOpts() cache.TraceKeyOpts {
	return cache.TraceKeyOpts{
		MinPoints: o.MinPoints,
		BridgeGap: o.BridgeGap,
		Traversal: o.Traversal,
		Threshold: o.Threshold,
		Invert:    o.Invert,
	}
}

// RefineKeyOpts returns cache key options for the refine stage.
// Workers is absent on purpose: parallel filtering is deterministic per path.
func (o *Options) RefineKeyOpts() cache.RefineKeyOpts {
	return cache.RefineKeyOpts{
		Filters:        o.Filters,
		MergeTolerance: o.MergeTolerance,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		StrokeWidth: o.StrokeWidth,
	}
}

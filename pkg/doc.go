// Package pkg provides the core libraries for Linetrace raster vectorization.
//
// # Overview
//
// Linetrace converts binary raster masks (line drawings, plotter scans,
// skeletonized sketches) into stroke-order vector paths. The pkg directory
// is organized into four main areas:
//
//  1. Domain logic - mask decoding, tracing, filtering, merging
//  2. Serialization - vector command documents and paths-document interchange
//  3. Output - SVG, EPS, PNG, and JSON sinks plus stitch-graph diagrams
//  4. Infrastructure - pipeline orchestration, caching, presets, history
//
// # Architecture
//
// The typical data flow through Linetrace:
//
//	Raster mask (PNG/JPEG/GIF/BMP/TIFF)
//	         ↓
//	    [raster] package (decode + threshold)
//	         ↓
//	    [trace] package (flood-fill polylines + gap bridging)
//	         ↓
//	    [filter] + [merge] packages (smooth, simplify, stitch)
//	         ↓
//	    [vector] + [render] packages (serialize + emit)
//	         ↓
//	    SVG/EPS/PNG/JSON output
//
// # Quick Start
//
// Vectorize a mask and write an SVG:
//
//	import (
//	    "context"
//	    "os"
//	    "github.com/matzehuels/linetrace/pkg/pipeline"
//	)
//
//	// 1. Load the mask bytes
//	img, _ := os.ReadFile("drawing.png")
//
//	// 2. Run the full pipeline
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//	result, _ := runner.Execute(context.Background(), img, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//
//	// 3. Write the artifact
//	os.WriteFile("drawing.svg", result.Artifacts["svg"], 0o644)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [geometry] - Point, Path, and Collection primitives shared by every stage.
// Euclidean distance, path length, endpoint access, and deep copies.
//
// [raster] - Binary masks decoded from PNG, JPEG, GIF, BMP, or TIFF bytes
// with luminance thresholding and optional inversion. Also supports drawing
// paths back into a mask for round-trip tests.
//
// [trace] - Flood-fill extraction of 8-connected components into polylines,
// plus endpoint detection and greedy gap bridging for strokes broken by
// scanning artifacts.
//
// [filter] - Composable path filters: decimation, moving-average smoothing,
// Chaikin corner cutting, Savitzky-Golay fitting, cubic-spline resampling,
// and Douglas-Peucker simplification. Filters parse from compact spec
// strings like "decimate=2,smooth=5,chaikin=2,simplify=1.2".
//
// [merge] - Endpoint stitching that concatenates path fragments whose ends
// fall within a tolerance, trying all four endpoint pairings.
//
// ## Serialization
//
// [vector] - Flat MoveTo/LineTo command documents decoupled from any output
// format, with optional y-flip for bottom-left-origin targets.
//
// [io] - The paths-document JSON interchange format used between CLI stages
// (trace → refine → render) and by the HTTP API.
//
// ## Output
//
// [render] - Pure-Go sinks for SVG, EPS, PNG, and JSON artifacts. Options
// control stroke width, color, precision, scale, and background.
//
// [render/nodelink] - Stitch-graph diagrams showing which fragments were
// bridged and merged, rendered through Graphviz.
//
// ## Infrastructure
//
// [pipeline] - The trace → refine → render orchestrator used by CLI and
// server. Validates options, caches per stage, and collects run statistics.
// Ensures consistent behavior across all entry points.
//
// [cache] - Content-addressed stage caches: FileCache for the CLI
// (sharded filesystem), RedisCache and MongoCache for services, NullCache
// for tests and --no-cache runs.
//
// [preset] - Named parameter bundles loaded from embedded TOML plus a user
// overlay directory. Presets fill only unset options, so explicit flags win.
//
// [history] - Local run history with age- and count-based pruning.
//
// [httputil] - Remote mask fetching with size limits and content-type
// checks, so every input argument can be a URL.
//
// [server] - HTTP API exposing the pipeline: POST /v1/vectorize plus
// preset listing and health endpoints.
//
// [errors] - Coded errors shared across packages; codes map to HTTP status
// and CLI exit behavior.
//
// [observability] - Structured logging setup shared by CLI and server.
//
// [buildinfo] - Version, commit, and build date stamped at link time.
//
// # Common Workflows
//
// Trace a mask directly:
//
//	mask, _ := raster.Decode(f, raster.DefaultThreshold, false)
//	tracer := trace.Tracer{MinPoints: 10}
//	paths := tracer.Trace(mask)
//
// Apply a filter chain:
//
//	chain, _ := filter.Parse("decimate=2,smooth=5,chaikin=2")
//	paths = chain.ApplyAll(paths)
//
// Render with custom styling:
//
//	doc := vector.Serialize(paths, width, height, vector.SerializeOptions{})
//	svg := render.RenderSVG(doc, render.WithStrokeWidth(2.5))
//
// Exchange paths documents between stages:
//
//	doc := pathsio.New(paths, width, height, 2.0)
//	pathsio.ExportFile(doc, "drawing.paths.json")
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/filter/...         # Specific package
//	go test -run Example             # Examples only
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/geometry
// [raster]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/raster
// [trace]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/trace
// [filter]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/filter
// [merge]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/merge
// [vector]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/vector
// [io]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/cache
// [preset]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/preset
// [history]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/history
// [httputil]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/httputil
// [server]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/linetrace/pkg/buildinfo
package pkg

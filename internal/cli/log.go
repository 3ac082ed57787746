// Package cli implements the linetrace command-line interface.
//
// This package provides commands for tracing binary mask images into vector
// paths, refining them with filter chains, rendering the results to multiple
// output formats, and managing the local result cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Full pipeline from mask image to rendered artifacts
//   - trace: Extract raw centerline paths from a mask
//   - refine: Apply filter chains and endpoint merging to traced paths
//   - render: Generate SVG, EPS, PNG, or JSON output from a paths document
//   - inspect: Show path statistics and the stitch graph
//   - preset: List, show, and pick parameter presets
//   - cache: Manage the local result cache
//   - history: Show recent runs
//   - serve: Expose the pipeline as an HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/linetrace/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger. It writes to w at the given level
// and stamps each line as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one operation from construction to done. Single
// goroutine use only.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts the clock for an operation reported via done.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time appended, rounded to the nearest
// millisecond. Example output: "Traced 42 paths (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is a private context key type, distinct from every other
// package's keys.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for retrieval by loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default()
// when none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

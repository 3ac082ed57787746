package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linetrace/pkg/history"
	"github.com/matzehuels/linetrace/pkg/pipeline"
)

// runCommand creates the run command, the full mask-to-artifact pipeline.
func (c *CLI) runCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		presetName string
		noCache    bool
		noHistory  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "run [mask]",
		Short: "Trace, refine, and render a mask image",
		Long: `Trace, refine, and render a mask image in one step.

The mask is a binary image (bright strokes on dark background, or the
reverse with --invert). Its foreground is traced into centerline
polylines, the polylines are cleaned up by the filter chain, and the
result is written in the requested output formats.

The mask may be a local file or an http(s):// URL. Stage results are
cached locally, so repeat runs with the same inputs are fast.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := applyPreset(&opts, presetName); err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runPipeline(cmd.Context(), args[0], opts, output, noCache, noHistory)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for a single format, base path for several ('-' for stdout)")
	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "parameter preset (see 'linetrace preset list')")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached results exist")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history")

	addTraceFlags(cmd, &opts)
	addRefineFlags(cmd, &opts)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output formats, comma-separated: svg, eps, png, json (default svg)")
	cmd.Flags().Float64Var(&opts.StrokeWidth, "stroke-width", 0, fmt.Sprintf("stroke width in pixels (default %v)", pipeline.DefaultStrokeWidth))

	return cmd
}

// addTraceFlags registers the tracing flags shared by run, trace, and inspect.
func addTraceFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVar(&opts.MinPoints, "min-points", 0, fmt.Sprintf("drop traced paths with fewer points (default %v)", pipeline.DefaultMinPoints))
	cmd.Flags().Float64Var(&opts.BridgeGap, "bridge-gap", 0, fmt.Sprintf("largest endpoint gap in pixels to bridge, negative disables (default %v)", pipeline.DefaultBridgeGap))
	cmd.Flags().StringVar(&opts.Traversal, "traversal", "", "pixel traversal order: dfs or bfs (default dfs)")
	cmd.Flags().IntVar(&opts.Threshold, "threshold", 0, fmt.Sprintf("gray cutoff for binarization, 0-255 (default %v)", pipeline.DefaultThreshold))
	cmd.Flags().BoolVar(&opts.Invert, "invert", false, "treat dark pixels as foreground")
}

// addRefineFlags registers the refinement flags shared by run, refine, and inspect.
func addRefineFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Filters, "filters", "", fmt.Sprintf("filter chain, 'none' to skip (default %q)", pipeline.DefaultFilters))
	cmd.Flags().Float64Var(&opts.MergeTolerance, "merge-tolerance", 0, fmt.Sprintf("largest endpoint gap in pixels to merge, negative disables (default %v)", pipeline.DefaultMergeTolerance))
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel filter workers (default: all CPUs)")
}

// runPipeline executes the full pipeline and writes the rendered artifacts.
func (c *CLI) runPipeline(ctx context.Context, input string, opts pipeline.Options, output string, noCache, noHistory bool) error {
	prog := newProgress(loggerFromContext(ctx))

	img, err := c.loadMask(ctx, input, opts.Refresh, noCache)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Source = input

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Vectorizing %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, img, opts)
	if err != nil {
		spinner.StopWithError("Vectorization failed")
		return err
	}
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	outputs, err := writeArtifacts(ctx, artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	if output == stdoutPath {
		// Stdout carries the artifact bytes; completion goes to the log.
		prog.done(fmt.Sprintf("Vectorized %s: %d paths, %d points", input, len(result.Paths), result.Stats.PointCount))
	} else {
		printSuccess("Vectorized %s", input)
		for _, path := range outputs {
			printFile(path)
		}
		printStats(len(result.Paths), result.Stats.PointCount, result.CacheInfo.RenderHit)
		printNewline()
		printNextStep("Inspect", "linetrace inspect "+input)
	}

	if !noHistory {
		c.recordRun(ctx, input, opts.Preset, result, outputs, time.Since(prog.start))
	}
	return nil
}

// recordRun appends the run to the local history and prunes old entries.
// History failures only warn; a broken state directory must not fail the run.
func (c *CLI) recordRun(ctx context.Context, input, presetName string, result *pipeline.Result, outputs []string, elapsed time.Duration) {
	store, err := history.NewFileStore("")
	if err != nil {
		c.Logger.Warn("history disabled", "error", err)
		return
	}
	entry := history.Entry{
		Input:    input,
		Preset:   presetName,
		Paths:    len(result.Paths),
		Points:   result.Stats.PointCount,
		Duration: elapsed,
		Outputs:  outputs,
	}
	if err := store.Record(ctx, &entry); err != nil {
		c.Logger.Warn("record history", "error", err)
		return
	}
	if _, err := store.Prune(ctx, history.DefaultMaxAge, history.DefaultMaxEntries); err != nil {
		c.Logger.Warn("prune history", "error", err)
	}
}

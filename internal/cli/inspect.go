package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/geometry"
	pkgio "github.com/matzehuels/linetrace/pkg/io"
	"github.com/matzehuels/linetrace/pkg/merge"
	"github.com/matzehuels/linetrace/pkg/pipeline"
	"github.com/matzehuels/linetrace/pkg/render/nodelink"
	"github.com/matzehuels/linetrace/pkg/trace"
)

// inspectCommand creates the inspect command, path statistics and stitch graph.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		presetName string
		stitchOut  string
		detailed   bool
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [mask|paths.json]",
		Short: "Show path statistics and the stitch graph",
		Long: `Show path statistics for a mask image or a paths document.

A mask input runs the trace and refine stages and reports the resulting
paths along with bridge and merge counts. A .json input is read as a
paths document and reported as-is.

With --stitch, a diagram of which paths were joined by bridging and
merging is written as SVG or PNG. This needs a mask input, since a
paths document no longer carries stitch information.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyPreset(&opts, presetName); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], opts, stitchOut, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&presetName, "preset", "p", "", "parameter preset (see 'linetrace preset list')")
	cmd.Flags().StringVar(&stitchOut, "stitch", "", "write the stitch graph to this file (.svg or .png)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include point counts and loop flags in stitch labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached results exist")
	addTraceFlags(cmd, &opts)
	addRefineFlags(cmd, &opts)

	return cmd
}

// runInspect reports statistics for the input and optionally writes the
// stitch graph.
func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options, stitchOut string, detailed, noCache bool) error {
	if strings.HasSuffix(input, ".json") {
		if stitchOut != "" {
			return errors.New(errors.ErrCodeInvalidInput, "stitch graph requires a mask input, not a paths document")
		}
		doc, err := pkgio.ImportFile(input)
		if err != nil {
			return fmt.Errorf("load paths %s: %w", input, err)
		}
		printInfo("Paths document %s", input)
		printPathStats(doc.Collection(), doc.Width, doc.Height)
		return nil
	}

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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %s...", input))
	spinner.Start()

	traced, _, err := runner.TraceWithCacheInfo(ctx, img, opts)
	if err != nil {
		spinner.StopWithError("Trace failed")
		return fmt.Errorf("trace: %w", err)
	}
	refined, _, err := runner.RefineWithCacheInfo(ctx, traced.Paths, opts)
	if err != nil {
		spinner.StopWithError("Refine failed")
		return fmt.Errorf("refine: %w", err)
	}
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	printInfo("Mask %s", input)
	printPathStats(refined.Paths, traced.Width, traced.Height)
	printKeyValue("Traced", fmt.Sprintf("%d paths", len(traced.Paths)))
	printKeyValue("Bridges", strconv.Itoa(len(traced.Bridges)))
	printKeyValue("Merges", strconv.Itoa(len(refined.Joins)))

	if stitchOut != "" {
		return writeStitchGraph(ctx, refined.Paths, traced.Bridges, refined.Joins, stitchOut, detailed)
	}
	return nil
}

// printPathStats prints the path count and length distribution.
func printPathStats(paths geometry.Collection, width, height int) {
	printKeyValue("Size", fmt.Sprintf("%dx%d px", width, height))
	printKeyValue("Paths", strconv.Itoa(len(paths)))
	printKeyValue("Points", strconv.Itoa(paths.TotalPoints()))
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
	printKeyValue("Length", fmt.Sprintf("min %.1f · median %.1f · p95 %.1f · max %.1f",
		shortest, median, p95, longest))
}

// writeStitchGraph renders the bridge/merge diagram, picking SVG or PNG from
// the output extension.
func writeStitchGraph(ctx context.Context, paths geometry.Collection, bridges []trace.BridgePair, joins []merge.Join, output string, detailed bool) error {
	g := nodelink.Build(paths, bridges, joins)
	loggerFromContext(ctx).Debugf("Stitch graph: %d nodes, %d links", len(g.Nodes), len(g.Links))
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: detailed})

	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".png":
		data, err = nodelink.RenderPNG(ctx, dot)
	case ".svg":
		data, err = nodelink.RenderSVG(ctx, dot)
	case "":
		output += ".svg"
		data, err = nodelink.RenderSVG(ctx, dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "stitch graph must be .svg or .png, got %s", ext)
	}
	if err != nil {
		return fmt.Errorf("render stitch graph: %w", err)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printFile(output)
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/linetrace/pkg/io"
	"github.com/matzehuels/linetrace/pkg/pipeline"
)

// traceCommand creates the trace command, mask to raw centerline paths.
func (c *CLI) traceCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "trace [mask]",
		Short: "Trace a mask image into raw centerline paths",
		Long: `Trace a mask image into raw centerline paths.

Each connected foreground component of the mask is followed into an
ordered polyline. Components below the minimum point count are dropped
as specks, and endpoints closer than the bridge gap are joined across
breaks. The output is a paths document (JSON) for 'refine' or 'render'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .paths.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached results exist")
	addTraceFlags(cmd, &opts)

	return cmd
}

// runTrace traces the mask and writes the paths document.
func (c *CLI) runTrace(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Tracing %s...", input))
	spinner.Start()

	traced, cacheHit, err := runner.TraceWithCacheInfo(ctx, img, opts)
	if err != nil {
		spinner.StopWithError("Trace failed")
		return fmt.Errorf("trace: %w", err)
	}
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".paths.json"
	}

	doc := pkgio.New(traced.Paths, traced.Width, traced.Height, 0)
	if err := pkgio.ExportFile(doc, outputPath); err != nil {
		return fmt.Errorf("write paths %s: %w", outputPath, err)
	}

	printSuccess("Traced %s", input)
	printFile(outputPath)
	printStats(len(traced.Paths), traced.Paths.TotalPoints(), cacheHit)
	if n := len(traced.Bridges); n > 0 {
		printDetail("%d gap(s) bridged", n)
	}
	printNewline()
	printNextStep("Refine", "linetrace refine "+outputPath)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/linetrace/pkg/io"
	"github.com/matzehuels/linetrace/pkg/pipeline"
)

// refineCommand creates the refine command, filter chain over a paths document.
func (c *CLI) refineCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "refine [paths.json]",
		Short: "Apply the filter chain and endpoint merging to traced paths",
		Long: `Apply the filter chain and endpoint merging to traced paths.

The input is a paths document produced by 'trace'. Each path runs
through the configured filter chain (decimation, smoothing, corner
cutting, simplification), then paths whose endpoints sit within the
merge tolerance are joined. The output is a new paths document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRefine(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .refined.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached results exist")
	addRefineFlags(cmd, &opts)

	return cmd
}

// runRefine loads a paths document, refines it, and writes the result.
func (c *CLI) runRefine(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	doc, err := pkgio.ImportFile(input)
	if err != nil {
		return fmt.Errorf("load paths %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Refining %d paths...", len(doc.Paths)))
	spinner.Start()

	refined, cacheHit, err := runner.RefineWithCacheInfo(ctx, doc.Collection(), opts)
	if err != nil {
		spinner.StopWithError("Refine failed")
		return fmt.Errorf("refine: %w", err)
	}
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = refinedPath(input)
	}

	out := pkgio.New(refined.Paths, doc.Width, doc.Height, doc.StrokeWidth)
	if err := pkgio.ExportFile(out, outputPath); err != nil {
		return fmt.Errorf("write paths %s: %w", outputPath, err)
	}

	printSuccess("Refined %s", input)
	printFile(outputPath)
	printStats(len(refined.Paths), refined.Paths.TotalPoints(), cacheHit)
	if n := len(refined.Joins); n > 0 {
		printDetail("%d path(s) merged", n)
	}
	printNewline()
	printNextStep("Render", "linetrace render "+outputPath)
	return nil
}

// refinedPath derives the default refine output name from the input name.
// "mask.paths.json" becomes "mask.refined.json"; anything else swaps its
// extension for ".refined.json".
func refinedPath(input string) string {
	if base, ok := strings.CutSuffix(input, ".paths.json"); ok {
		return base + ".refined.json"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".refined.json"
}

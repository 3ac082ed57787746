package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/httputil"
	pkgio "github.com/matzehuels/linetrace/pkg/io"
	"github.com/matzehuels/linetrace/pkg/pipeline"
)

// stdoutPath is the output argument that sends a single artifact to stdout.
const stdoutPath = "-"

// renderCommand creates the render command, paths document to output formats.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [paths.json]",
		Short: "Render a paths document as SVG, EPS, PNG, or JSON",
		Long: `Render a paths document as SVG, EPS, PNG, or JSON.

The input is a paths document produced by 'trace' or 'refine'. Rendering
does not re-run the pipeline; use 'run' to go straight from a mask image
to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for a single format, base path for several ('-' for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached results exist")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output formats, comma-separated: svg, eps, png, json (default svg)")
	cmd.Flags().Float64Var(&opts.StrokeWidth, "stroke-width", 0, fmt.Sprintf("stroke width in pixels (default %v)", pipeline.DefaultStrokeWidth))

	return cmd
}

// runRender loads a paths document and renders the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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
	if opts.StrokeWidth == 0 {
		opts.StrokeWidth = doc.StrokeWidth
	}
	// Normalize here so the format spellings below match the artifact keys.
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, doc.Collection(), doc.Width, doc.Height, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	outputs, err := writeArtifacts(ctx, artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	if output == stdoutPath {
		// Stdout carries the artifact bytes; completion goes to the log.
		prog.done(fmt.Sprintf("Rendered %s", input))
		return nil
	}
	printSuccess("Rendered %s", input)
	for _, p := range outputs {
		printFile(p)
	}
	printStats(len(doc.Paths), doc.Collection().TotalPoints(), cacheHit)
	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the arguments for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format to disk and returns the paths
// written. A single format goes to the output path as given; several formats
// treat the output as a base path and append the format extension. With
// output "-" the single artifact goes to stdout instead.
func writeArtifacts(ctx context.Context, p artifactWriteParams) ([]string, error) {
	logger := loggerFromContext(ctx)

	if p.output == stdoutPath {
		if len(p.formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "stdout output requires a single format, got %d", len(p.formats))
		}
		data := p.artifacts[p.formats[0]]
		if _, err := os.Stdout.Write(data); err != nil {
			return nil, fmt.Errorf("write stdout: %w", err)
		}
		logger.Debugf("Wrote %s to stdout: %d bytes", p.formats[0], len(data))
		return nil, nil
	}

	base := basePath(p.output, p.input)
	single := len(p.formats) == 1

	written := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		outPath := base + "." + format
		if single && p.output != "" {
			outPath = p.output
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", outPath, err)
		}
		logger.Debugf("Generated %s: %d bytes", outPath, len(data))
		written = append(written, outPath)
	}
	return written, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; a URL input keeps
// only its final path segment so artifacts land in the working directory.
// If output has a format extension (.svg, .png, etc.), that is stripped.
func basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if httputil.IsURL(input) {
		if u, err := url.Parse(input); err == nil {
			input = path.Base(u.Path)
		}
		if input == "." || input == "/" {
			input = appName
		}
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

package pipeline

import (
	"context"

	"github.com/matzehuels/linetrace/pkg/filter"
	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/merge"
)

// Refined bundles the refine stage output: the filtered paths and the
// endpoint joins the merge pass applied.
type Refined struct {
	Paths geometry.Collection `json:"paths"`
	Joins []merge.Join        `json:"joins,omitempty"`
}

// Refine runs the filter chain over traced paths and stitches fragments
// whose endpoints nearly touch.
//
// Filtering comes first so the merge pass measures gaps between smoothed
// endpoints rather than raw pixel positions. Filters run across paths in
// parallel with opts.Workers goroutines.
func Refine(ctx context.Context, paths geometry.Collection, opts Options) (Refined, error) {
	if err := opts.ValidateForRefine(); err != nil {
		return Refined{}, err
	}

	chain, err := filter.Parse(opts.Filters)
	if err != nil {
		return Refined{}, err
	}

	filtered, err := chain.ApplyAllParallel(ctx, paths, opts.Workers)
	if err != nil {
		return Refined{}, err
	}

	merger := merge.Merger{Tolerance: opts.MergeTolerance}
	merged, joins := merger.Merge(filtered)

	opts.Logger.Debug("applied filter chain",
		"chain", chain.String(),
		"in", len(paths),
		"out", len(merged),
		"joins", len(joins))

	return Refined{Paths: merged, Joins: joins}, nil
}

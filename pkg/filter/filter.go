package filter

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

// Filter reshapes a single path. Implementations are pure: they never mutate
// the input, and they return it unchanged when it is below their minimum
// viable length.
type Filter interface {
	// Name returns the short identifier used in filter specs ("decimate").
	Name() string
	// Apply returns the reshaped path.
	Apply(geometry.Path) geometry.Path
}

// Chain is an ordered list of filters applied one after another.
type Chain []Filter

// Apply runs every filter in order over a single path.
func (c Chain) Apply(p geometry.Path) geometry.Path {
	for _, f := range c {
		p = f.Apply(p)
	}
	return p
}

// ApplyAll runs the chain over every path in the collection sequentially.
func (c Chain) ApplyAll(paths geometry.Collection) geometry.Collection {
	out := make(geometry.Collection, len(paths))
	for i, p := range paths {
		out[i] = c.Apply(p)
	}
	return out
}

// ApplyAllParallel runs the chain over the collection with at most workers
// concurrent goroutines. Paths are independent, so results land at their
// input index and the output order matches ApplyAll. workers <= 0 means
// GOMAXPROCS.
func (c Chain) ApplyAllParallel(ctx context.Context, paths geometry.Collection, workers int) (geometry.Collection, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make(geometry.Collection, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = c.Apply(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// String renders the chain in the canonical spec form accepted by [Parse].
func (c Chain) String() string {
	if len(c) == 0 {
		return ""
	}
	parts := make([]string, len(c))
	for i, f := range c {
		if s, ok := f.(interface{ String() string }); ok {
			parts[i] = s.String()
		} else {
			parts[i] = f.Name()
		}
	}
	return strings.Join(parts, ",")
}

package filter

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

// Decimate walks the path and keeps a point only when its distance from the
// last kept point reaches Tolerance. The first point is always kept; if the
// walk drops the final point it is appended again so both endpoints survive.
// The reduction is a single greedy pass, not globally optimal, and it is
// idempotent for a fixed tolerance.
type Decimate struct {
	Tolerance float64
}

func (f Decimate) Name() string { return "decimate" }

func (f Decimate) String() string {
	return fmt.Sprintf("decimate=%s", strconv.FormatFloat(f.Tolerance, 'g', -1, 64))
}

func (f Decimate) Apply(p geometry.Path) geometry.Path {
	if f.Tolerance <= 0 || len(p) < 3 {
		return p
	}
	kept := make(geometry.Path, 0, len(p))
	kept = append(kept, p[0])
	for _, pt := range p[1:] {
		if pt.Distance(kept[len(kept)-1]) >= f.Tolerance {
			kept = append(kept, pt)
		}
	}
	if last := p[len(p)-1]; kept[len(kept)-1] != last {
		kept = append(kept, last)
	}
	return kept
}

package filter

import (
	"fmt"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

// Chaikin smooths corners by replacing every edge with two points at the 1/4
// and 3/4 interpolation marks. Each iteration roughly doubles the point count
// and converges toward a quadratic B-spline. The first and last point are
// preserved across every iteration. Paths with fewer than 4 points pass
// through unchanged.
type Chaikin struct {
	Iterations int
}

func (f Chaikin) Name() string { return "chaikin" }

func (f Chaikin) String() string { return fmt.Sprintf("chaikin=%d", f.Iterations) }

func (f Chaikin) Apply(p geometry.Path) geometry.Path {
	if f.Iterations <= 0 || len(p) < 4 {
		return p
	}
	out := p
	for range f.Iterations {
		out = chaikinStep(out)
	}
	return out
}

func chaikinStep(p geometry.Path) geometry.Path {
	out := make(geometry.Path, 0, 2*len(p))
	out = append(out, p[0])
	for i := 0; i < len(p)-1; i++ {
		out = append(out, p[i].Lerp(p[i+1], 0.25), p[i].Lerp(p[i+1], 0.75))
	}
	return append(out, p[len(p)-1])
}

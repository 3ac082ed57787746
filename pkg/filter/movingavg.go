package filter

import (
	"fmt"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

// MovingAverage replaces each point with the arithmetic mean of a symmetric
// window centered on it, clipped at the path ends. Output coordinates stay
// fractional; rounding is left to the serializer. Paths shorter than the
// window pass through unchanged.
type MovingAverage struct {
	Window int
}

func (f MovingAverage) Name() string { return "smooth" }

func (f MovingAverage) String() string { return fmt.Sprintf("smooth=%d", f.Window) }

func (f MovingAverage) Apply(p geometry.Path) geometry.Path {
	if f.Window < 2 || len(p) < f.Window {
		return p
	}
	half := f.Window / 2
	out := make(geometry.Path, len(p))
	for i := range p {
		lo := max(0, i-half)
		hi := min(len(p), i+half+1)
		var sx, sy float64
		for _, pt := range p[lo:hi] {
			sx += pt.X
			sy += pt.Y
		}
		n := float64(hi - lo)
		out[i] = geometry.Point{X: sx / n, Y: sy / n}
	}
	return out
}

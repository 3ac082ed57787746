package filter

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

// Simplify reduces a path with the Douglas-Peucker algorithm: points farther
// than Epsilon from the chord of their segment survive and split the segment,
// everything else collapses to the segment ends.
//
// The usual recursion runs as an explicit work stack, so a pathological path
// (one long wiggle that splits at every point) cannot overflow the goroutine
// stack. Survivors are marked in an index mask and collected in order, which
// also guarantees a split point is emitted exactly once where the two halves
// meet.
//
// Epsilon <= 0 and paths with fewer than 3 points pass through unchanged. An
// epsilon at or above the bounding-box diagonal collapses the path to its two
// endpoints.
type Simplify struct {
	Epsilon float64
}

func (f Simplify) Name() string { return "simplify" }

func (f Simplify) String() string {
	return fmt.Sprintf("simplify=%s", strconv.FormatFloat(f.Epsilon, 'g', -1, 64))
}

func (f Simplify) Apply(p geometry.Path) geometry.Path {
	if f.Epsilon <= 0 || len(p) < 3 {
		return p
	}

	keep := make([]bool, len(p))
	keep[0], keep[len(p)-1] = true, true

	type span struct{ start, end int }
	stack := []span{{0, len(p) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.end-s.start < 2 {
			continue
		}

		maxDist, maxIdx := 0.0, s.start
		for i := s.start + 1; i < s.end; i++ {
			if d := chordDistance(p[i], p[s.start], p[s.end]); d > maxDist {
				maxDist, maxIdx = d, i
			}
		}
		if maxDist > f.Epsilon {
			keep[maxIdx] = true
			stack = append(stack, span{s.start, maxIdx}, span{maxIdx, s.end})
		}
	}

	out := make(geometry.Path, 0, len(p))
	for i, k := range keep {
		if k {
			out = append(out, p[i])
		}
	}
	return out
}

// chordDistance is the distance from pt to the segment ab, with the
// projection clamped to the segment. A zero-length chord falls back to plain
// point distance.
func chordDistance(pt, a, b geometry.Point) float64 {
	ab := b.Sub(a)
	len2 := ab.LengthSquared()
	if len2 == 0 {
		return pt.Distance(a)
	}
	t := pt.Sub(a).Dot(ab) / len2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return pt.Distance(a.Add(ab.Mul(t)))
}

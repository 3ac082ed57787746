// Package merge stitches fragments of the same stroke back into single
// paths. Tracing splits a stroke wherever the raster breaks, and bridging
// only repairs gaps it can see in the mask; this pass walks the resulting
// collection and concatenates paths whose endpoints nearly touch.
//
// The pass is a greedy, scan-order-dependent heuristic, not a global
// shortest-stitching solution: the first pair found below tolerance merges
// immediately and the grown path keeps absorbing neighbors in the same scan.
// Rounds repeat until nothing merges, bounded by the collection size, because
// a merge can create adjacencies that were out of reach in the previous
// round.
package merge

import (
	"github.com/matzehuels/linetrace/pkg/geometry"
)

// DefaultTolerance is the endpoint gap in pixels below which two paths are
// considered fragments of the same stroke.
const DefaultTolerance = 5.0

// Join records one stitch between two path endpoints, for reporting.
type Join struct {
	From geometry.Point `json:"from"`
	To   geometry.Point `json:"to"`
	Gap  float64        `json:"gap"`
}

// Merger concatenates paths whose endpoints are closer than Tolerance.
// A Tolerance <= 0 disables merging.
type Merger struct {
	Tolerance float64
}

// Merge returns the stitched collection and the joins that were applied.
// All four endpoint pairings are tried for each candidate pair, and the
// concatenation runs in the orientation with the smallest gap, reversing one
// fragment when the match is tail-to-tail or head-to-head. Input paths are
// never mutated.
func (m Merger) Merge(c geometry.Collection) (geometry.Collection, []Join) {
	if m.Tolerance <= 0 || len(c) < 2 {
		return c, nil
	}

	paths := c
	var joins []Join

	changed := true
	for round := 0; changed && round < len(c); round++ {
		changed = false
		result := make(geometry.Collection, 0, len(paths))
		used := make([]bool, len(paths))

		for i := range paths {
			if used[i] {
				continue
			}
			current := paths[i]
			used[i] = true

			for j := i + 1; j < len(paths); j++ {
				if used[j] {
					continue
				}
				joined, join, ok := m.join(current, paths[j])
				if !ok {
					continue
				}
				current = joined
				joins = append(joins, join)
				used[j] = true
				changed = true
			}
			result = append(result, current)
		}
		paths = result
	}
	return paths, joins
}

// join concatenates a and b in the endpoint orientation with the smallest
// gap, provided that gap is strictly below the tolerance. Empty paths never
// merge.
func (m Merger) join(a, b geometry.Path) (geometry.Path, Join, bool) {
	if len(a) == 0 || len(b) == 0 {
		return nil, Join{}, false
	}

	tailHead := a.Tail().Distance(b.Head())
	headTail := a.Head().Distance(b.Tail())
	tailTail := a.Tail().Distance(b.Tail())
	headHead := a.Head().Distance(b.Head())

	best := min(tailHead, headTail, tailTail, headHead)
	if best >= m.Tolerance {
		return nil, Join{}, false
	}

	var out geometry.Path
	var from, to geometry.Point
	switch best {
	case tailHead:
		from, to = a.Tail(), b.Head()
		out = concat(a, b)
	case headTail:
		from, to = b.Tail(), a.Head()
		out = concat(b, a)
	case tailTail:
		from, to = a.Tail(), b.Tail()
		out = concat(a, b.Reverse())
	default: // head to head
		from, to = b.Head(), a.Head()
		out = concat(b.Reverse(), a)
	}
	return out, Join{From: from, To: to, Gap: best}, true
}

func concat(a, b geometry.Path) geometry.Path {
	out := make(geometry.Path, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

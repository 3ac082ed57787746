package geometry

// Path is an ordered sequence of points representing a traced or synthesized
// stroke. Consecutive points of a freshly traced path are grid-adjacent
// (Chebyshev distance 1); bridging and merging relax that invariant, so a
// path may contain long synthetic straight segments afterwards.
//
// A path owns its backing array exclusively. Operations that splice points
// across paths must Clone first.
type Path []Point

// Head returns the first point. Panics on an empty path.
func (p Path) Head() Point {
	return p[0]
}

// Tail returns the last point. Panics on an empty path.
func (p Path) Tail() Point {
	return p[len(p)-1]
}

// Clone returns a deep copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Reverse returns a new path with the point order inverted.
func (p Path) Reverse() Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// Length returns the polyline arc length: the sum of distances between
// consecutive points. Paths with fewer than 2 points have length 0.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i].Distance(p[i-1])
	}
	return total
}

// Bounds returns the axis-aligned bounding box as (min, max).
// An empty path returns two zero points.
func (p Path) Bounds() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.X > max.X {
			max.X = pt.X
		}
		if pt.Y > max.Y {
			max.Y = pt.Y
		}
	}
	return min, max
}

// Collection is a set of paths with no ordering guarantee between them.
type Collection []Path

// TotalPoints returns the number of points summed over all paths.
func (c Collection) TotalPoints() int {
	n := 0
	for _, p := range c {
		n += len(p)
	}
	return n
}

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, p := range c {
		out[i] = p.Clone()
	}
	return out
}

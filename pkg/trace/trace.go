// Package trace converts binary masks into path collections.
//
// The tracer partitions foreground pixels into 8-connected components and
// emits one path per component. The bridger closes small gaps between traced
// strokes by detecting degree-1 endpoints, greedily pairing nearby ones, and
// rasterizing connecting segments so a re-trace returns the joined stroke.
package trace

import (
	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/raster"
)

// Traversal selects the flood-fill frontier discipline.
type Traversal string

// Supported traversal orders.
const (
	// DepthFirst explores with a LIFO stack. This is the default and the
	// reference point order.
	DepthFirst Traversal = "dfs"

	// BreadthFirst explores with a FIFO queue. The traced point set is
	// identical; only the order within each path changes.
	BreadthFirst Traversal = "bfs"
)

// DefaultMinPoints is the default noise-rejection threshold: components with
// fewer points are dropped. Useful values range from 5 (delicate detail)
// to 150 (coarse strokes only).
const DefaultMinPoints = 10

// Tracer extracts connected components from a mask as point sequences.
type Tracer struct {
	// MinPoints drops components with fewer points. Zero keeps everything.
	MinPoints int

	// Traversal is the flood-fill order. Empty means DepthFirst.
	Traversal Traversal
}

// Trace walks the mask in row-major order and flood-fills each unvisited
// foreground pixel's 8-connected component into one path.
//
// The point order within a path is the traversal order, not a geometric
// ordering along the stroke. For a 1-pixel-wide curve the two coincide
// almost everywhere, but at junctions the order jumps between branches.
// Downstream smoothing treats the sequence as a 1D signal over array index
// and depends on this order being stable, so it must not be re-sorted.
//
// Pixels are marked visited when pushed onto the frontier, so every
// foreground pixel lands in exactly one path. An empty mask produces an
// empty collection.
func (t Tracer) Trace(m *raster.Mask) geometry.Collection {
	visited := make([]bool, m.Width*m.Height)
	var paths geometry.Collection

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.At(x, y) || visited[y*m.Width+x] {
				continue
			}
			path := t.flood(m, visited, x, y)
			if len(path) >= t.minPoints() {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

// flood expands one component starting at (x, y). The frontier doubles as
// stack (depth-first) or queue (breadth-first); marking happens on push.
func (t Tracer) flood(m *raster.Mask, visited []bool, x, y int) geometry.Path {
	frontier := make([]gridPoint, 1, 64)
	frontier[0] = gridPoint{x, y}
	visited[y*m.Width+x] = true

	var path geometry.Path
	head := 0

	for head < len(frontier) {
		var cur gridPoint
		if t.Traversal == BreadthFirst {
			cur = frontier[head]
			head++
		} else {
			cur = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
		}
		path = append(path, geometry.Pt(float64(cur.x), float64(cur.y)))

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := cur.x+dx, cur.y+dy
				if !m.At(nx, ny) {
					continue
				}
				if visited[ny*m.Width+nx] {
					continue
				}
				visited[ny*m.Width+nx] = true
				frontier = append(frontier, gridPoint{nx, ny})
			}
		}
	}
	return path
}

func (t Tracer) minPoints() int {
	if t.MinPoints <= 0 {
		return 1
	}
	return t.MinPoints
}

type gridPoint struct {
	x, y int
}

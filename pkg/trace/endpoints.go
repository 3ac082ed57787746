package trace

import (
	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/raster"
)

// Endpoints returns one point per stroke end in the mask.
//
// An endpoint pixel is a foreground pixel with exactly one foreground
// neighbor in the 8-neighborhood, matching the adjacency the tracer uses.
// Skeletons a few pixels wide can produce small blobs of adjacent endpoint
// pixels at a stroke end; blobs are collapsed to their centroid so each
// stroke end yields a single coordinate.
func Endpoints(m *raster.Mask) []geometry.Point {
	flagged := make([]bool, m.Width*m.Height)
	any := false
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) && m.Neighbors8(x, y) == 1 {
				flagged[y*m.Width+x] = true
				any = true
			}
		}
	}
	if !any {
		return nil
	}
	return clusterCentroids(m.Width, m.Height, flagged)
}

// clusterCentroids groups flagged pixels into 8-connected blobs and returns
// each blob's centroid, in row-major order of the blob's first pixel.
func clusterCentroids(w, h int, flagged []bool) []geometry.Point {
	seen := make([]bool, len(flagged))
	var centroids []geometry.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !flagged[idx] || seen[idx] {
				continue
			}

			// Flood over the blob accumulating the coordinate sums.
			stack := []gridPoint{{x, y}}
			seen[idx] = true
			var sumX, sumY float64
			count := 0

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				sumX += float64(p.x)
				sumY += float64(p.y)
				count++

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.x+dx, p.y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						nidx := ny*w + nx
						if !flagged[nidx] || seen[nidx] {
							continue
						}
						seen[nidx] = true
						stack = append(stack, gridPoint{nx, ny})
					}
				}
			}

			centroids = append(centroids, geometry.Pt(sumX/float64(count), sumY/float64(count)))
		}
	}
	return centroids
}

// BridgePair is an accepted endpoint pairing.
type BridgePair struct {
	A, B geometry.Point
	Gap  float64
}

// PairEndpoints greedily pairs endpoints closer than maxGap.
//
// Endpoints are scanned in slice order; each unused endpoint takes the
// nearest unused endpoint after it whose distance is strictly below maxGap,
// and both are marked used. The result depends on scan order. That is the
// documented contract, not an implementation accident: re-pairing or global
// minimum-weight matching would change which gaps close on real pages.
func PairEndpoints(endpoints []geometry.Point, maxGap float64) []BridgePair {
	if len(endpoints) < 2 || maxGap <= 0 {
		return nil
	}

	used := make([]bool, len(endpoints))
	var pairs []BridgePair

	for i := range endpoints {
		if used[i] {
			continue
		}
		best := -1
		bestDist := maxGap
		for j := i + 1; j < len(endpoints); j++ {
			if used[j] {
				continue
			}
			if d := endpoints[i].Distance(endpoints[j]); d < bestDist {
				best = j
				bestDist = d
			}
		}
		if best >= 0 {
			used[i] = true
			used[best] = true
			pairs = append(pairs, BridgePair{A: endpoints[i], B: endpoints[best], Gap: bestDist})
		}
	}
	return pairs
}

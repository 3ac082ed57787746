package trace

import (
	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/raster"
)

// DefaultMaxGap is the default bridging distance in pixels. Broken strokes
// on rendered pages typically separate by 20-40 px at working resolutions.
const DefaultMaxGap = 30

// bridgeThickness is the brush width for synthesized segments. Two pixels
// keeps the bridge 8-connected to both stroke ends even across diagonal
// junctions.
const bridgeThickness = 2

// Bridger repairs accidental breaks between traced strokes.
type Bridger struct {
	// MaxGap is the largest endpoint distance that will be bridged.
	// Zero or negative disables bridging.
	MaxGap float64

	// Tracer re-traces the patched mask. Its MinPoints and Traversal apply
	// to the joined strokes.
	Tracer Tracer
}

// Bridge detects stroke endpoints in the mask, pairs those closer than
// MaxGap, and merges the affected strokes by rasterization: each accepted
// pair is drawn as a straight segment into a clone of the mask and the
// combined raster is re-traced. Strokes whose gap closed come back as one
// path; everything else re-traces unchanged.
//
// With fewer than 2 endpoints, or no pair within MaxGap, the input
// collection is returned as-is along with a nil pair list.
func (b Bridger) Bridge(m *raster.Mask, paths geometry.Collection) (geometry.Collection, []BridgePair) {
	if b.MaxGap <= 0 {
		return paths, nil
	}

	endpoints := Endpoints(m)
	if len(endpoints) < 2 {
		return paths, nil
	}

	pairs := PairEndpoints(endpoints, b.MaxGap)
	if len(pairs) == 0 {
		return paths, nil
	}

	patched := m.Clone()
	for _, p := range pairs {
		patched.DrawLine(p.A, p.B, bridgeThickness)
	}
	return b.Tracer.Trace(patched), pairs
}

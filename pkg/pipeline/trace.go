package pipeline

import (
	"bytes"

	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/raster"
	"github.com/matzehuels/linetrace/pkg/trace"
)

// Traced bundles the trace stage output: the paths, the gap bridges drawn
// while tracing, and the mask dimensions the paths live in. The dimensions
// ride along so a cached result can be rendered without re-decoding the mask.
type Traced struct {
	Paths   geometry.Collection `json:"paths"`
	Bridges []trace.BridgePair  `json:"bridges,omitempty"`
	Width   int                 `json:"width"`
	Height  int                 `json:"height"`
}

// Trace decodes a mask image and extracts its stroke paths.
//
// The mask is binarized at opts.Threshold, flood-filled into connected
// components, and each component is walked into a polyline. Components
// separated by a gap of at most opts.BridgeGap are then bridged and retraced
// so broken strokes come back as one path.
func Trace(img []byte, opts Options) (Traced, error) {
	if err := opts.ValidateForTrace(); err != nil {
		return Traced{}, err
	}

	m, err := raster.Decode(bytes.NewReader(img), uint8(opts.Threshold), opts.Invert)
	if err != nil {
		return Traced{}, err
	}

	tracer := trace.Tracer{
		MinPoints: opts.MinPoints,
		Traversal: trace.Traversal(opts.Traversal),
	}
	paths := tracer.Trace(m)

	bridger := trace.Bridger{MaxGap: opts.BridgeGap, Tracer: tracer}
	paths, bridges := bridger.Bridge(m, paths)

	opts.Logger.Debug("traced mask",
		"width", m.Width,
		"height", m.Height,
		"paths", len(paths),
		"bridges", len(bridges))

	return Traced{
		Paths:   paths,
		Bridges: bridges,
		Width:   m.Width,
		Height:  m.Height,
	}, nil
}

package pipeline

import (
	"fmt"

	"github.com/matzehuels/linetrace/pkg/geometry"
	sink "github.com/matzehuels/linetrace/pkg/render"
	"github.com/matzehuels/linetrace/pkg/vector"
)

// Render serializes paths to vector commands and generates output artifacts
// in the requested formats. Width and height are the canvas dimensions in
// pixels, normally the mask dimensions from the trace stage.
//
// Serialization runs once per format because bottom-left-origin targets
// need the vertical axis flipped.
func Render(paths geometry.Collection, width, height int, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		f, err := sink.ParseFormat(format)
		if err != nil {
			return nil, err
		}

		doc := vector.Serialize(paths, width, height, vector.SerializeOptions{FlipY: f.FlipY()})

		data, err := sink.Render(f, doc, opts.StrokeWidth)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

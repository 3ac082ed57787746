package render

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/vector"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	strokeWidth float64
	scale       float64
}

// WithPNGStrokeWidth sets the stroke width in pixels at scale 1.
func WithPNGStrokeWidth(w float64) PNGOption {
	return func(r *pngRenderer) { r.strokeWidth = w }
}

// WithPNGScale sets the resolution multiplier (default 1, use 2 for 2x
// supersampled previews).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the document into a PNG preview: black round-capped
// strokes on a white ground, screen orientation.
func RenderPNG(doc vector.Document, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{strokeWidth: 2, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	w := max(1, int(math.Round(doc.Width*r.scale)))
	h := max(1, int(math.Round(doc.Height*r.scale)))

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.SetRGB(0, 0, 0)
	// gg stroke widths are device pixels, unaffected by the transform.
	dc.SetLineWidth(r.strokeWidth * r.scale)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	open := false
	for _, cmd := range doc.Commands {
		switch cmd.Op {
		case vector.OpMoveTo:
			if open {
				dc.Stroke()
			}
			dc.MoveTo(cmd.Point.X, cmd.Point.Y)
			open = true
		case vector.OpLineTo:
			dc.LineTo(cmd.Point.X, cmd.Point.Y)
		}
	}
	if open {
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

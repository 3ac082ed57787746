package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/linetrace/pkg/vector"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	strokeWidth float64
	strokeColor string
	precision   int
	transparent bool
}

func WithStrokeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.strokeWidth = w } }
func WithStrokeColor(c string) SVGOption  { return func(r *svgRenderer) { r.strokeColor = c } }
func WithPrecision(p int) SVGOption       { return func(r *svgRenderer) { r.precision = p } }
func WithTransparentBackground() SVGOption {
	return func(r *svgRenderer) { r.transparent = true }
}

// RenderSVG emits the document as an SVG drawing: a white ground rect
// (unless transparent), then one <path> per stroke inside a single styled
// group. Coordinates are screen-oriented, so the serializer must not flip
// the vertical axis for this sink.
func RenderSVG(doc vector.Document, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		doc.Width, doc.Height, doc.Width, doc.Height)
	if !r.transparent {
		buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")
	}
	fmt.Fprintf(&buf, `  <g id="lines" stroke="%s" fill="none" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round">`+"\n",
		r.strokeColor, fmtCoord(r.strokeWidth, r.precision))

	path := 0
	open := false
	for _, cmd := range doc.Commands {
		x := fmtCoord(cmd.Point.X, r.precision)
		y := fmtCoord(cmd.Point.Y, r.precision)
		switch cmd.Op {
		case vector.OpMoveTo:
			if open {
				buf.WriteString("\"/>\n")
			}
			fmt.Fprintf(&buf, `    <path id="p%d" d="M %s %s `, path, x, y)
			path++
			open = true
		case vector.OpLineTo:
			fmt.Fprintf(&buf, "L %s %s ", x, y)
		}
	}
	if open {
		buf.WriteString("\"/>\n")
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{strokeWidth: 2, strokeColor: "black", precision: 1}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/linetrace/pkg/vector"
)

// EPSOption configures EPS rendering.
type EPSOption func(*epsRenderer)

type epsRenderer struct {
	strokeWidth float64
	title       string
	creator     string
}

// WithEPSStrokeWidth sets the stroke width in pixels. The prolog converts
// it to PostScript points via [vector.StrokePoints].
func WithEPSStrokeWidth(w float64) EPSOption {
	return func(r *epsRenderer) { r.strokeWidth = w }
}

// WithEPSTitle sets the %%Title document comment, typically the output
// file name.
func WithEPSTitle(t string) EPSOption { return func(r *epsRenderer) { r.title = t } }

// WithEPSCreator sets the %%Creator document comment.
func WithEPSCreator(c string) EPSOption { return func(r *epsRenderer) { r.creator = c } }

// RenderEPS emits the document as an Adobe Illustrator compatible
// PostScript stream: an AI-3.0 prolog with page setup and stroke state,
// then newpath/moveto/lineto/stroke per path. PostScript origins sit at
// the bottom-left, so the serializer must flip the vertical axis
// ([vector.SerializeOptions]) before this sink runs.
func RenderEPS(doc vector.Document, opts ...EPSOption) []byte {
	r := epsRenderer{strokeWidth: 2, title: "untitled", creator: "linetrace"}
	for _, opt := range opts {
		opt(&r)
	}

	const prec = 2

	var buf bytes.Buffer
	buf.WriteString("%!AI-Adobe_Illustrator-3.0\n")
	fmt.Fprintf(&buf, "%%%%Creator: %s\n", r.creator)
	fmt.Fprintf(&buf, "%%%%Title: %s\n", r.title)
	buf.WriteString("%%Pages: 1\n")
	fmt.Fprintf(&buf, "%%%%BoundingBox: 0 0 %.0f %.0f\n\n", doc.Width, doc.Height)
	fmt.Fprintf(&buf, "<<\n  /PageSize [%.0f %.0f]\n>> setpagedevice\n\n", doc.Width, doc.Height)
	buf.WriteString("0 setgray\n")
	fmt.Fprintf(&buf, "%.3f setlinewidth\n", vector.StrokePoints(r.strokeWidth))
	buf.WriteString("1 setlinecap\n1 setlinejoin\n")

	for i, p := range doc.Paths() {
		fmt.Fprintf(&buf, "\n%% Path %d (%d points)\n", i+1, len(p))
		buf.WriteString("newpath\n")
		fmt.Fprintf(&buf, "%s %s moveto\n", fmtCoord(p[0].X, prec), fmtCoord(p[0].Y, prec))
		for _, pt := range p[1:] {
			fmt.Fprintf(&buf, "%s %s lineto\n", fmtCoord(pt.X, prec), fmtCoord(pt.Y, prec))
		}
		buf.WriteString("stroke\n")
	}

	buf.WriteString("\nshowpage\n%%EndDocument\n")
	return buf.Bytes()
}

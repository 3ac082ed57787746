// Package render provides output sinks for serialized path documents.
//
// # Overview
//
// A sink transforms a [vector.Document] (the flat command stream the
// serializer produces) into a final artifact. This package provides
// renderers for:
//
//   - SVG: scalable vector markup for screens and editors
//   - EPS: Adobe Illustrator compatible PostScript for print
//   - PNG: raster preview
//   - JSON: paths interchange document for round-trip processing
//
// # Formats
//
// [Format] names a sink; [ParseFormat] validates user input. Each format
// declares its coordinate convention through [Format.FlipY]: EPS expects a
// bottom-left origin, so the serializer flips the vertical axis before the
// sink runs, while SVG, PNG, and JSON stay screen-oriented. Build the
// document with the matching option:
//
//	doc := vector.Serialize(paths, w, h, vector.SerializeOptions{FlipY: f.FlipY()})
//	data, err := render.Render(f, doc, strokeWidth)
//
// # SVG Output
//
// [RenderSVG] emits a white ground rect and one <path> element per stroke
// inside a single group carrying the stroke style:
//
//	svg := render.RenderSVG(doc,
//	    render.WithStrokeWidth(2),
//	    render.WithPrecision(1),
//	)
//
// Options: [WithStrokeWidth], [WithStrokeColor], [WithPrecision] (decimal
// places per coordinate, trailing zeros trimmed), and
// [WithTransparentBackground] to drop the ground rect.
//
// # EPS Output
//
// [RenderEPS] emits an AI-3.0 prolog (page size, gray stroke state, line
// width converted to PostScript points) followed by one
// newpath/moveto/lineto/stroke block per path. Options: [WithEPSStrokeWidth],
// [WithEPSTitle], [WithEPSCreator].
//
// # PNG Output
//
// [RenderPNG] rasterizes the strokes onto a white canvas with round caps
// and joins. [WithPNGScale] multiplies the output resolution for crisper
// previews.
//
// # JSON Output
//
// [RenderJSON] exports the paths document defined in [io]. Unlike the
// other sinks it is lossless: the refine and render stages accept its
// output as input.
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer: func RenderFoo(doc vector.Document, opts ...FooOption) ([]byte, error)
//  2. Define option types for configuration
//  3. Add a Format constant and wire it into ParseFormat, ContentType, and Render
//  4. Decide the coordinate convention in Format.FlipY
//
// The existing sinks provide examples: svg.go for markup assembly, eps.go
// for a text command stream, png.go for rasterization, json.go for data
// export.
//
// [vector.Document]: github.com/matzehuels/linetrace/pkg/vector.Document
// [io]: github.com/matzehuels/linetrace/pkg/io
package render

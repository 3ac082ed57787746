// Package nodelink renders the stitch graph of a pipeline run as a
// node-link diagram.
//
// # Overview
//
// Bridging and merging silently rewrite the path collection, which makes
// their combined effect hard to inspect from the final artifact alone. The
// stitch graph makes the repairs visible: every final path becomes a box,
// every closed gap becomes an edge between the paths it connected.
//
// # Usage
//
// Build the graph from a pipeline run, convert to DOT, then render:
//
//	g := nodelink.Build(result.Paths, report.Bridges, report.Joins)
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Reading the Diagram
//
//   - Boxes are final paths, ids matching the p0, p1, ... ids in the SVG
//     artifact. Closed loops get a double border.
//   - Dashed undirected edges are raster bridges; solid directed edges are
//     path merges, pointing from the absorbing path to the absorbed one.
//   - Edge labels carry the stage name and the gap distance in pixels.
//   - A self-loop means two fragments were repaired into the same final
//     path, which is the usual sign of a successful stitch.
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering; no external Graphviz installation is required.
package nodelink

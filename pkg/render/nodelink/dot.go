package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/merge"
	"github.com/matzehuels/linetrace/pkg/trace"
)

// LinkKind names the repair stage that produced a link.
type LinkKind string

const (
	// LinkBridge marks a gap closed by endpoint bridging on the raster.
	LinkBridge LinkKind = "bridge"
	// LinkMerge marks two paths joined by the path merger.
	LinkMerge LinkKind = "merge"
)

// Node is one final path in the stitch graph. IDs match the p0, p1, ...
// ids the SVG sink assigns, so a node can be located in the artifact.
type Node struct {
	ID     string
	Points int
	Closed bool
}

// Link is one repaired break between (or within) final paths.
type Link struct {
	From string
	To   string
	Kind LinkKind
	Gap  float64
}

// Graph is the stitch graph of a pipeline run: one node per final path,
// one link per repaired break.
type Graph struct {
	Nodes []Node
	Links []Link
}

// A path whose ends sit closer than this is drawn as a closed loop.
const closedTolerance = 2.0

// Build assembles the stitch graph for a final path collection. Each link
// endpoint resolves to the path containing the nearest point, so a break
// whose fragments ended up in a single final path becomes a self-loop on
// that path.
func Build(paths geometry.Collection, bridges []trace.BridgePair, joins []merge.Join) Graph {
	g := Graph{Nodes: make([]Node, len(paths))}
	for i, p := range paths {
		g.Nodes[i] = Node{
			ID:     fmt.Sprintf("p%d", i),
			Points: len(p),
			Closed: len(p) > 2 && p.Head().Distance(p.Tail()) <= closedTolerance,
		}
	}
	if len(paths) == 0 {
		return g
	}
	for _, b := range bridges {
		g.Links = append(g.Links, buildLink(paths, b.A, b.B, LinkBridge, b.Gap))
	}
	for _, j := range joins {
		g.Links = append(g.Links, buildLink(paths, j.From, j.To, LinkMerge, j.Gap))
	}
	return g
}

func buildLink(paths geometry.Collection, a, b geometry.Point, kind LinkKind, gap float64) Link {
	return Link{
		From: fmt.Sprintf("p%d", nearestPath(paths, a)),
		To:   fmt.Sprintf("p%d", nearestPath(paths, b)),
		Kind: kind,
		Gap:  gap,
	}
}

// nearestPath returns the index of the path containing the point closest
// to pt, first found on ties.
func nearestPath(paths geometry.Collection, pt geometry.Point) int {
	best := 0
	bestDist := math.Inf(1)
	for i, p := range paths {
		for _, q := range p {
			if d := q.Distance(pt); d < bestDist {
				best = i
				bestDist = d
			}
		}
	}
	return best
}

// Options configures stitch diagram rendering.
type Options struct {
	// Detailed includes point counts and loop flags in node labels.
	// When false, only the path ID is shown.
	Detailed bool
}

// ToDOT converts a stitch graph to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG] or [RenderPNG].
//
// Bridge links are drawn dashed and undirected (a raster repair has no
// direction); merge links are solid and point from the absorbing path to
// the absorbed one. Every link is labeled with its stage and gap distance.
func ToDOT(g Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph stitches {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.From, l.To, strings.Join(linkAttrs(l), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	parts := []string{fmt.Sprintf("%d points", n.Points)}
	if n.Closed {
		parts = append(parts, "closed")
	}
	return n.ID + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Closed {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func linkAttrs(l Link) []string {
	attrs := []string{fmt.Sprintf("label=\"%s %.1fpx\"", l.Kind, l.Gap)}
	if l.Kind == LinkBridge {
		attrs = append(attrs, "style=dashed", "dir=none")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderGraphviz(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraphviz(ctx, dot, graphviz.PNG)
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render stitch graph")
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg tag into a plain pixel-sized
// one so the artifact displays at natural size in browsers and editors.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

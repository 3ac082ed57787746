package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/merge"
	"github.com/matzehuels/linetrace/pkg/trace"
)

func twoPaths() geometry.Collection {
	return geometry.Collection{
		{{X: 0, Y: 0}, {X: 10, Y: 0}},
		{{X: 50, Y: 0}, {X: 60, Y: 0}},
	}
}

func TestBuild(t *testing.T) {
	bridges := []trace.BridgePair{
		{A: geometry.Point{X: 10, Y: 0}, B: geometry.Point{X: 50, Y: 0}, Gap: 40},
	}
	joins := []merge.Join{
		{From: geometry.Point{X: 60, Y: 0}, To: geometry.Point{X: 0, Y: 0}, Gap: 60},
	}

	g := Build(twoPaths(), bridges, joins)

	if len(g.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(g.Nodes))
	}
	if g.Nodes[0].ID != "p0" || g.Nodes[1].ID != "p1" {
		t.Errorf("node ids = %s, %s, want p0, p1", g.Nodes[0].ID, g.Nodes[1].ID)
	}
	if g.Nodes[0].Points != 2 {
		t.Errorf("p0 points = %d, want 2", g.Nodes[0].Points)
	}

	if len(g.Links) != 2 {
		t.Fatalf("link count = %d, want 2", len(g.Links))
	}
	bridge := g.Links[0]
	if bridge.From != "p0" || bridge.To != "p1" || bridge.Kind != LinkBridge {
		t.Errorf("bridge link = %+v, want p0 -> p1 bridge", bridge)
	}
	if bridge.Gap != 40 {
		t.Errorf("bridge gap = %v, want 40", bridge.Gap)
	}
	mergeLink := g.Links[1]
	if mergeLink.From != "p1" || mergeLink.To != "p0" || mergeLink.Kind != LinkMerge {
		t.Errorf("merge link = %+v, want p1 -> p0 merge", mergeLink)
	}
}

func TestBuild_SelfLoopAfterRepair(t *testing.T) {
	// One final path that absorbed both fragments: the stitch endpoints
	// both resolve to p0.
	paths := geometry.Collection{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 50, Y: 0}, {X: 60, Y: 0}},
	}
	bridges := []trace.BridgePair{
		{A: geometry.Point{X: 10, Y: 0}, B: geometry.Point{X: 50, Y: 0}, Gap: 40},
	}

	g := Build(paths, bridges, nil)

	if len(g.Links) != 1 {
		t.Fatalf("link count = %d, want 1", len(g.Links))
	}
	if l := g.Links[0]; l.From != "p0" || l.To != "p0" {
		t.Errorf("link = %s -> %s, want self-loop on p0", l.From, l.To)
	}
}

func TestBuild_ClosedLoop(t *testing.T) {
	square := geometry.Path{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 1},
	}

	g := Build(geometry.Collection{square}, nil, nil)

	if !g.Nodes[0].Closed {
		t.Error("near-closed square not flagged as closed")
	}
}

func TestBuild_Empty(t *testing.T) {
	bridges := []trace.BridgePair{{Gap: 5}}

	g := Build(nil, bridges, nil)

	if len(g.Nodes) != 0 {
		t.Errorf("node count = %d, want 0", len(g.Nodes))
	}
	if len(g.Links) != 0 {
		t.Errorf("link count = %d, want 0 with no paths to attach to", len(g.Links))
	}
}

func TestToDOT(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "p0", Points: 120},
			{ID: "p1", Points: 80, Closed: true},
		},
		Links: []Link{
			{From: "p0", To: "p1", Kind: LinkBridge, Gap: 12.5},
			{From: "p1", To: "p0", Kind: LinkMerge, Gap: 3},
		},
	}

	dot := ToDOT(g, Options{})

	if !strings.HasPrefix(dot, "digraph stitches {\n") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, `"p0" [label="p0"];`) {
		t.Errorf("missing p0 node:\n%s", dot)
	}
	if !strings.Contains(dot, "peripheries=2") {
		t.Errorf("closed path not double-bordered:\n%s", dot)
	}
	if !strings.Contains(dot, `"p0" -> "p1" [label="bridge 12.5px", style=dashed, dir=none];`) {
		t.Errorf("bridge edge malformed:\n%s", dot)
	}
	if !strings.Contains(dot, `"p1" -> "p0" [label="merge 3.0px"];`) {
		t.Errorf("merge edge malformed:\n%s", dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "p0", Points: 42, Closed: true}}}

	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, "42 points") {
		t.Errorf("detailed label missing point count:\n%s", dot)
	}
	if !strings.Contains(dot, "closed") {
		t.Errorf("detailed label missing closed flag:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="134pt" height="116pt" viewBox="0.00 0.00 134.00 116.00" xmlns="http://www.w3.org/2000/svg">`)

	got := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 134.00 116.00" width="134" height="116">`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}

func TestNormalizeViewBox_NoMatch(t *testing.T) {
	in := []byte(`<svg><rect/></svg>`)
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Errorf("svg without viewBox modified: %s", got)
	}
}

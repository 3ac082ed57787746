package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/vector"
)

func TestRenderEPS(t *testing.T) {
	paths := geometry.Collection{{{X: 10, Y: 20}, {X: 11, Y: 20}}}
	doc := vector.Serialize(paths, 100, 200, vector.SerializeOptions{FlipY: true})

	want := `%!AI-Adobe_Illustrator-3.0
%%Creator: linetrace
%%Title: untitled
%%Pages: 1
%%BoundingBox: 0 0 100 200

<<
  /PageSize [100 200]
>> setpagedevice

0 setgray
0.028 setlinewidth
1 setlinecap
1 setlinejoin

% Path 1 (2 points)
newpath
10 180 moveto
11 180 lineto
stroke

showpage
%%EndDocument
`

	got := string(RenderEPS(doc))
	if got != want {
		t.Errorf("RenderEPS() mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderEPS_Options(t *testing.T) {
	got := string(RenderEPS(testDocument(),
		WithEPSStrokeWidth(7.2),
		WithEPSTitle("drawing.eps"),
		WithEPSCreator("plotbot"),
	))

	if !strings.Contains(got, "%%Title: drawing.eps\n") {
		t.Errorf("title not applied:\n%s", got)
	}
	if !strings.Contains(got, "%%Creator: plotbot\n") {
		t.Errorf("creator not applied:\n%s", got)
	}
	if !strings.Contains(got, "0.100 setlinewidth\n") {
		t.Errorf("stroke width not converted to points:\n%s", got)
	}
}

func TestRenderEPS_PathNumbering(t *testing.T) {
	got := string(RenderEPS(testDocument()))

	if !strings.Contains(got, "% Path 1 (3 points)\n") {
		t.Errorf("first path header missing:\n%s", got)
	}
	if !strings.Contains(got, "% Path 2 (2 points)\n") {
		t.Errorf("second path header missing:\n%s", got)
	}
	if got := strings.Count(got, "stroke\n"); got != 2 {
		t.Errorf("stroke count = %d, want 2", got)
	}
}

func TestRenderEPS_Empty(t *testing.T) {
	doc := vector.Serialize(nil, 50, 50, vector.SerializeOptions{FlipY: true})

	got := string(RenderEPS(doc))
	if strings.Contains(got, "newpath") {
		t.Errorf("empty document produced path blocks:\n%s", got)
	}
	if !strings.HasSuffix(got, "showpage\n%%EndDocument\n") {
		t.Errorf("trailer missing:\n%s", got)
	}
}

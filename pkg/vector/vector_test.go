package vector

import (
	"testing"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

func TestSerialize_CommandSequence(t *testing.T) {
	paths := geometry.Collection{
		{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}},
		{{X: 7, Y: 8}, {X: 9, Y: 10}},
	}

	doc := Serialize(paths, 100, 50, SerializeOptions{})

	if doc.Width != 100 || doc.Height != 50 {
		t.Errorf("canvas = %vx%v, want 100x50", doc.Width, doc.Height)
	}
	if doc.Strokes != 2 {
		t.Errorf("Strokes = %d, want 2", doc.Strokes)
	}

	want := []Command{
		{OpMoveTo, geometry.Point{X: 1, Y: 2}},
		{OpLineTo, geometry.Point{X: 3, Y: 4}},
		{OpLineTo, geometry.Point{X: 5, Y: 6}},
		{OpMoveTo, geometry.Point{X: 7, Y: 8}},
		{OpLineTo, geometry.Point{X: 9, Y: 10}},
	}
	if len(doc.Commands) != len(want) {
		t.Fatalf("Serialize() = %d commands, want %d", len(doc.Commands), len(want))
	}
	for i, cmd := range doc.Commands {
		if cmd != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, cmd, want[i])
		}
	}
}

func TestSerialize_FlipY(t *testing.T) {
	paths := geometry.Collection{{{X: 10, Y: 30}, {X: 20, Y: 100}}}

	doc := Serialize(paths, 200, 150, SerializeOptions{FlipY: true})

	if got := doc.Commands[0].Point; got != (geometry.Point{X: 10, Y: 120}) {
		t.Errorf("flipped moveto = %v, want {10 120}", got)
	}
	if got := doc.Commands[1].Point; got != (geometry.Point{X: 20, Y: 50}) {
		t.Errorf("flipped lineto = %v, want {20 50}", got)
	}
}

func TestSerialize_SkipsDegeneratePaths(t *testing.T) {
	paths := geometry.Collection{
		{},
		{{X: 5, Y: 5}},
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
	}

	doc := Serialize(paths, 10, 10, SerializeOptions{})

	if doc.Strokes != 1 {
		t.Errorf("Strokes = %d, want 1 (empty and single-point paths skipped)", doc.Strokes)
	}
	if len(doc.Commands) != 2 {
		t.Errorf("Serialize() = %d commands, want 2", len(doc.Commands))
	}
}

func TestSerialize_Empty(t *testing.T) {
	doc := Serialize(nil, 10, 10, SerializeOptions{})
	if doc.Strokes != 0 || len(doc.Commands) != 0 {
		t.Errorf("Serialize(nil) = %d strokes, %d commands; want none", doc.Strokes, len(doc.Commands))
	}
}

func TestDocument_Paths(t *testing.T) {
	in := geometry.Collection{
		{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}},
		{{X: 7, Y: 8}, {X: 9, Y: 10}},
	}

	got := Serialize(in, 100, 50, SerializeOptions{}).Paths()

	if len(got) != len(in) {
		t.Fatalf("Paths() = %d paths, want %d", len(got), len(in))
	}
	for i, p := range got {
		if len(p) != len(in[i]) {
			t.Fatalf("path %d: %d points, want %d", i, len(p), len(in[i]))
		}
		for j, pt := range p {
			if pt != in[i][j] {
				t.Errorf("path %d point %d = %v, want %v", i, j, pt, in[i][j])
			}
		}
	}
}

func TestDocument_Paths_Empty(t *testing.T) {
	if got := (Document{}).Paths(); len(got) != 0 {
		t.Errorf("Paths() on empty document = %d paths, want 0", len(got))
	}
}

func TestStrokePoints(t *testing.T) {
	tests := []struct {
		px   float64
		want float64
	}{
		{72, 1},
		{36, 0.5},
		{4, 4.0 / 72.0},
	}
	for _, tt := range tests {
		if got := StrokePoints(tt.px); got != tt.want {
			t.Errorf("StrokePoints(%v) = %v, want %v", tt.px, got, tt.want)
		}
	}
}

func TestOp_String(t *testing.T) {
	if OpMoveTo.String() != "moveto" || OpLineTo.String() != "lineto" {
		t.Errorf("Op strings = %q, %q; want moveto, lineto", OpMoveTo, OpLineTo)
	}
}

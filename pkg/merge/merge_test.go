package merge

import (
	"testing"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

func seg(pts ...geometry.Point) geometry.Path {
	return geometry.Path(pts)
}

func pt(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func samePath(a, b geometry.Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMerge_Orientations(t *testing.T) {
	// Every combination must stitch the two fragments into the same
	// left-to-right run, reversing a fragment when its far end matches.
	want := seg(pt(0, 0), pt(5, 0), pt(7, 0), pt(12, 0))

	tests := []struct {
		name string
		in   geometry.Collection
	}{
		{"tail to head", geometry.Collection{seg(pt(0, 0), pt(5, 0)), seg(pt(7, 0), pt(12, 0))}},
		{"head to tail", geometry.Collection{seg(pt(7, 0), pt(12, 0)), seg(pt(0, 0), pt(5, 0))}},
		{"tail to tail", geometry.Collection{seg(pt(0, 0), pt(5, 0)), seg(pt(12, 0), pt(7, 0))}},
		{"head to head", geometry.Collection{seg(pt(7, 0), pt(12, 0)), seg(pt(5, 0), pt(0, 0))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, joins := Merger{Tolerance: 3}.Merge(tt.in)
			if len(out) != 1 {
				t.Fatalf("Merge() = %d paths, want 1", len(out))
			}
			if !samePath(out[0], want) {
				t.Errorf("Merge() = %v, want %v", out[0], want)
			}
			if len(joins) != 1 || joins[0].Gap != 2 {
				t.Errorf("joins = %+v, want one join with gap 2", joins)
			}
		})
	}
}

func TestMerge_PicksSmallestGap(t *testing.T) {
	// Several pairings fall under the tolerance; the closest one must win.
	a := seg(pt(0, 0), pt(10, 0))
	b := seg(pt(11, 0), pt(22, 0))

	out, joins := Merger{Tolerance: 15}.Merge(geometry.Collection{a, b})
	if len(out) != 1 {
		t.Fatalf("Merge() = %d paths, want 1", len(out))
	}
	if joins[0].Gap != 1 {
		t.Errorf("join gap = %v, want 1 (tail to head)", joins[0].Gap)
	}
	if out[0].Head() != pt(0, 0) || out[0].Tail() != pt(22, 0) {
		t.Errorf("Merge() = %v..%v, want {0 0}..{22 0}", out[0].Head(), out[0].Tail())
	}
}

func TestMerge_IteratesToFixedPoint(t *testing.T) {
	// The first round stitches only B onto C; the A-B adjacency becomes
	// reachable in the second round.
	c := seg(pt(10, 0), pt(13, 0))
	a := seg(pt(0, 0), pt(3, 0))
	b := seg(pt(5, 0), pt(8, 0))

	out, joins := Merger{Tolerance: 3}.Merge(geometry.Collection{c, a, b})
	if len(out) != 1 {
		t.Fatalf("Merge() = %d paths, want 1", len(out))
	}
	want := seg(pt(0, 0), pt(3, 0), pt(5, 0), pt(8, 0), pt(10, 0), pt(13, 0))
	if !samePath(out[0], want) {
		t.Errorf("Merge() = %v, want %v", out[0], want)
	}
	if len(joins) != 2 {
		t.Errorf("Merge() applied %d joins, want 2", len(joins))
	}
}

func TestMerge_RespectsTolerance(t *testing.T) {
	a := seg(pt(0, 0), pt(5, 0))
	b := seg(pt(10, 0), pt(15, 0))

	// The 5 px gap is not strictly below the tolerance.
	out, joins := Merger{Tolerance: 5}.Merge(geometry.Collection{a, b})
	if len(out) != 2 || len(joins) != 0 {
		t.Errorf("Merge() = %d paths, %d joins; want 2 paths untouched", len(out), len(joins))
	}
}

func TestMerge_TouchingEndpointsKeepAllPoints(t *testing.T) {
	a := seg(pt(0, 0), pt(5, 0))
	b := seg(pt(5, 0), pt(9, 0))

	out, joins := Merger{Tolerance: 1}.Merge(geometry.Collection{a, b})
	if len(out) != 1 {
		t.Fatalf("Merge() = %d paths, want 1", len(out))
	}
	if len(out[0]) != 4 {
		t.Errorf("merged path has %d points, want all 4", len(out[0]))
	}
	if joins[0].Gap != 0 {
		t.Errorf("join gap = %v, want 0", joins[0].Gap)
	}
}

func TestMerge_Passthrough(t *testing.T) {
	single := geometry.Collection{seg(pt(0, 0), pt(5, 0))}
	pair := geometry.Collection{seg(pt(0, 0), pt(5, 0)), seg(pt(50, 0), pt(60, 0))}

	tests := []struct {
		name string
		m    Merger
		in   geometry.Collection
	}{
		{"single path", Merger{Tolerance: 10}, single},
		{"disabled", Merger{Tolerance: 0}, pair},
		{"negative tolerance", Merger{Tolerance: -2}, pair},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, joins := tt.m.Merge(tt.in)
			if len(out) != len(tt.in) || joins != nil {
				t.Errorf("Merge() = %d paths, %v joins; want passthrough", len(out), joins)
			}
		})
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	a := seg(pt(0, 0), pt(5, 0))
	b := seg(pt(12, 0), pt(7, 0))
	in := geometry.Collection{a, b}
	snapshot := in.Clone()

	Merger{Tolerance: 3}.Merge(in)

	for i := range in {
		if !samePath(in[i], snapshot[i]) {
			t.Errorf("input path %d mutated: %v", i, in[i])
		}
	}
}

func TestMerge_EmptyPathNeverMerges(t *testing.T) {
	in := geometry.Collection{seg(), seg(pt(0, 0), pt(5, 0))}
	out, joins := Merger{Tolerance: 10}.Merge(in)
	if len(out) != 2 || len(joins) != 0 {
		t.Errorf("Merge() = %d paths, %d joins; want empty path passed through", len(out), len(joins))
	}
}

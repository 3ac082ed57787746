package filter

import (
	"testing"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

func TestSimplify_Triangle(t *testing.T) {
	in := geometry.Path{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}}

	tests := []struct {
		name    string
		epsilon float64
		want    int
	}{
		{"keeps apex", 1, 3},
		{"collapses apex", 6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Simplify{Epsilon: tt.epsilon}.Apply(in)
			if len(out) != tt.want {
				t.Fatalf("Apply(eps=%v) = %d points, want %d", tt.epsilon, len(out), tt.want)
			}
			if out.Head() != in.Head() || out.Tail() != in.Tail() {
				t.Errorf("endpoints %v..%v, want %v..%v", out.Head(), out.Tail(), in.Head(), in.Tail())
			}
		})
	}
}

func TestSimplify_CollapsesNoisyLine(t *testing.T) {
	in := make(geometry.Path, 21)
	for i := range in {
		y := 0.0
		if i%2 == 1 {
			y = 0.05
		}
		in[i] = geometry.Point{X: float64(i), Y: y}
	}

	out := Simplify{Epsilon: 0.5}.Apply(in)
	want := geometry.Path{{X: 0, Y: 0}, {X: 20, Y: 0}}
	if !samePath(out, want) {
		t.Errorf("Apply() = %v, want the two endpoints only", out)
	}
}

func TestSimplify_EpsilonAboveDiagonal(t *testing.T) {
	in := diagonal(50)
	lo, hi := in.Bounds()

	out := Simplify{Epsilon: hi.Sub(lo).Length()}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("Apply(eps=diagonal) = %d points, want 2", len(out))
	}
	if out[0] != in[0] || out[1] != in[len(in)-1] {
		t.Errorf("Apply() = %v, want endpoints of the input", out)
	}
}

func TestSimplify_EpsilonZeroIdentity(t *testing.T) {
	in := geometry.Path{{X: 0, Y: 0}, {X: 1, Y: 3}, {X: 2, Y: -1}, {X: 3, Y: 0}}
	out := Simplify{Epsilon: 0}.Apply(in)
	if !samePath(out, in) {
		t.Errorf("Apply(eps=0) = %v, want input unchanged", out)
	}
}

func TestSimplify_SplitPointEmittedOnce(t *testing.T) {
	// A zigzag keeps every apex; each split point must appear exactly once.
	in := geometry.Path{{X: 0, Y: 0}, {X: 2, Y: 4}, {X: 4, Y: 0}, {X: 6, Y: 4}, {X: 8, Y: 0}}
	out := Simplify{Epsilon: 1}.Apply(in)

	if len(out) != len(in) {
		t.Fatalf("Apply() = %d points, want %d", len(out), len(in))
	}
	seen := make(map[geometry.Point]int)
	for _, pt := range out {
		seen[pt]++
	}
	for pt, n := range seen {
		if n > 1 {
			t.Errorf("point %v emitted %d times", pt, n)
		}
	}
}

func TestSimplify_ShortPath(t *testing.T) {
	in := diagonal(2)
	if out := (Simplify{Epsilon: 3}).Apply(in); !samePath(out, in) {
		t.Errorf("Apply() = %v, want input unchanged", out)
	}
}

func TestChordDistance(t *testing.T) {
	tests := []struct {
		name    string
		pt, a, b geometry.Point
		want    float64
	}{
		{"perpendicular", geometry.Point{X: 5, Y: 3}, geometry.Point{}, geometry.Point{X: 10}, 3},
		{"beyond end clamps", geometry.Point{X: 14, Y: 3}, geometry.Point{}, geometry.Point{X: 10}, 5},
		{"before start clamps", geometry.Point{X: -4, Y: 3}, geometry.Point{}, geometry.Point{X: 10}, 5},
		{"degenerate chord", geometry.Point{X: 3, Y: 4}, geometry.Point{}, geometry.Point{}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chordDistance(tt.pt, tt.a, tt.b); got != tt.want {
				t.Errorf("chordDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}

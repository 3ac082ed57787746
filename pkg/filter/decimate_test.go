package filter

import (
	"testing"

	"github.com/matzehuels/linetrace/pkg/geometry"
)

func TestDecimate_DropsClosePoints(t *testing.T) {
	in := line(6, 1)
	out := Decimate{Tolerance: 2}.Apply(in)

	want := geometry.Path{{X: 0}, {X: 2}, {X: 4}, {X: 5}}
	if !samePath(out, want) {
		t.Errorf("Apply() = %v, want %v", out, want)
	}
}

func TestDecimate_PreservesEndpoints(t *testing.T) {
	in := diagonal(50)
	out := Decimate{Tolerance: 5}.Apply(in)

	if len(out) >= 50 || len(out) < 2 {
		t.Fatalf("Apply() = %d points, want fewer than 50 and at least 2", len(out))
	}
	if out[0] != in[0] {
		t.Errorf("first point = %v, want %v", out[0], in[0])
	}
	if out[len(out)-1] != in[len(in)-1] {
		t.Errorf("last point = %v, want %v", out[len(out)-1], in[len(in)-1])
	}
}

func TestDecimate_Idempotent(t *testing.T) {
	d := Decimate{Tolerance: 5}
	once := d.Apply(diagonal(50))
	twice := d.Apply(once)

	if !samePath(once, twice) {
		t.Errorf("second pass changed the path: %d -> %d points", len(once), len(twice))
	}
}

func TestDecimate_NoOp(t *testing.T) {
	tests := []struct {
		name string
		d    Decimate
		in   geometry.Path
	}{
		{"two points", Decimate{Tolerance: 10}, diagonal(2)},
		{"zero tolerance", Decimate{Tolerance: 0}, diagonal(10)},
		{"negative tolerance", Decimate{Tolerance: -1}, diagonal(10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out := tt.d.Apply(tt.in); !samePath(out, tt.in) {
				t.Errorf("Apply() = %v, want input unchanged", out)
			}
		})
	}
}

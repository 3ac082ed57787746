package geometry

import "testing"

func TestPath_HeadTail(t *testing.T) {
	p := Path{Pt(1, 2), Pt(3, 4), Pt(5, 6)}
	if got := p.Head(); got != Pt(1, 2) {
		t.Errorf("Head() = %v, want (1,2)", got)
	}
	if got := p.Tail(); got != Pt(5, 6) {
		t.Errorf("Tail() = %v, want (5,6)", got)
	}
}

func TestPath_Clone(t *testing.T) {
	p := Path{Pt(1, 1), Pt(2, 2)}
	c := p.Clone()
	c[0] = Pt(9, 9)

	if p[0] != Pt(1, 1) {
		t.Errorf("Clone() shares backing array: original mutated to %v", p[0])
	}
}

func TestPath_Reverse(t *testing.T) {
	p := Path{Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	r := p.Reverse()

	want := Path{Pt(3, 0), Pt(2, 0), Pt(1, 0)}
	for i := range want {
		if r[i] != want[i] {
			t.Errorf("Reverse()[%d] = %v, want %v", i, r[i], want[i])
		}
	}
	// Original untouched.
	if p[0] != Pt(1, 0) {
		t.Errorf("Reverse() mutated input: p[0] = %v", p[0])
	}
}

func TestPath_Length(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want float64
	}{
		{"Empty", Path{}, 0},
		{"SinglePoint", Path{Pt(5, 5)}, 0},
		{"UnitSegment", Path{Pt(0, 0), Pt(1, 0)}, 1},
		{"RightAngle", Path{Pt(0, 0), Pt(3, 0), Pt(3, 4)}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.Length(); !approxEqual(got, tt.want) {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPath_Bounds(t *testing.T) {
	p := Path{Pt(3, 7), Pt(-1, 2), Pt(5, 4)}
	min, max := p.Bounds()
	if min != Pt(-1, 2) {
		t.Errorf("Bounds() min = %v, want (-1,2)", min)
	}
	if max != Pt(5, 7) {
		t.Errorf("Bounds() max = %v, want (5,7)", max)
	}

	min, max = Path{}.Bounds()
	if min != (Point{}) || max != (Point{}) {
		t.Errorf("Bounds() of empty = %v,%v, want zero points", min, max)
	}
}

func TestCollection_TotalPoints(t *testing.T) {
	c := Collection{
		{Pt(0, 0), Pt(1, 1)},
		{Pt(2, 2), Pt(3, 3), Pt(4, 4)},
	}
	if got := c.TotalPoints(); got != 5 {
		t.Errorf("TotalPoints() = %d, want 5", got)
	}
}

func TestCollection_Clone(t *testing.T) {
	c := Collection{{Pt(1, 1)}}
	d := c.Clone()
	d[0][0] = Pt(8, 8)

	if c[0][0] != Pt(1, 1) {
		t.Errorf("Clone() shares path buffers: original mutated to %v", c[0][0])
	}
}

package raster

import "github.com/matzehuels/linetrace/pkg/geometry"

// DrawLine rasterizes a straight segment from a to b into the mask using
// Bresenham stepping. Thickness 1 marks the line pixels themselves;
// thickness t additionally marks pixels within a (t-1)-pixel square brush
// around each line pixel, which is how bridge segments are made thick enough
// for the tracer to pick up as part of the surrounding stroke.
func (m *Mask) DrawLine(a, b geometry.Point, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	ar, br := a.Round(), b.Round()
	x0, y0 := int(ar.X), int(ar.Y)
	x1, y1 := int(br.X), int(br.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		m.stamp(x0, y0, thickness)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPath rasterizes every segment of a polyline.
func (m *Mask) DrawPath(p geometry.Path, thickness int) {
	if len(p) == 1 {
		m.SetPoint(p[0], true)
		return
	}
	for i := 1; i < len(p); i++ {
		m.DrawLine(p[i-1], p[i], thickness)
	}
}

// stamp marks a square brush of the given thickness centered near (x, y).
// The brush extends further toward positive offsets for even sizes.
func (m *Mask) stamp(x, y, thickness int) {
	if thickness == 1 {
		m.Set(x, y, true)
		return
	}
	lo := -(thickness - 1) / 2
	hi := thickness / 2
	for oy := lo; oy <= hi; oy++ {
		for ox := lo; ox <= hi; ox++ {
			m.Set(x+ox, y+oy, true)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

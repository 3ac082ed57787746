// Package raster provides the binary pixel mask the tracer consumes and the
// small amount of raster drawing the bridger needs.
//
// A mask is a width×height grid of foreground/background bits with the
// nonzero-means-foreground contract of the upstream image-processing stages.
// Mask generation itself (thresholding strategies, edge detection,
// morphology) is out of scope; this package only loads and binarizes an
// already-prepared mask image.
package raster

import (
	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/geometry"
)

// Mask is an immutable-by-convention binary pixel grid. The tracer treats it
// as read-only; the bridger clones before drawing.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// New creates an all-background mask. Width and height must be positive;
// this is one of the few hard failures in the pipeline.
func New(width, height int) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidMask, "mask dimensions must be positive, got %dx%d", width, height)
	}
	return &Mask{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}, nil
}

// At reports whether the pixel at (x, y) is foreground.
// Coordinates outside the grid are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set writes the pixel at (x, y). Out-of-bounds writes are ignored so line
// drawing can clip against the grid edge without pre-checks.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.bits[y*m.Width+x] = v
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	bits := make([]bool, len(m.bits))
	copy(bits, m.bits)
	return &Mask{Width: m.Width, Height: m.Height, bits: bits}
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Neighbors4 returns the number of foreground pixels among the 4-connected
// neighbors of (x, y): the cross-shaped kernel used for endpoint detection.
func (m *Mask) Neighbors4(x, y int) int {
	n := 0
	if m.At(x, y-1) {
		n++
	}
	if m.At(x-1, y) {
		n++
	}
	if m.At(x+1, y) {
		n++
	}
	if m.At(x, y+1) {
		n++
	}
	return n
}

// Neighbors8 returns the number of foreground pixels among the 8-connected
// neighbors of (x, y).
func (m *Mask) Neighbors8(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if m.At(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// SetPoint marks the pixel under a real-valued point (rounded to the nearest
// grid cell) as foreground.
func (m *Mask) SetPoint(p geometry.Point, v bool) {
	r := p.Round()
	m.Set(int(r.X), int(r.Y), v)
}

// Package vector turns path collections into flat drawing command lists.
// Sinks consume the command stream instead of the raw paths so coordinate
// conventions (origin, stroke units) are decided once, here.
package vector

import (
	"github.com/matzehuels/linetrace/pkg/geometry"
)

// PointsPerInch is the typographic resolution used to convert pixel stroke
// widths into PostScript points.
const PointsPerInch = 72.0

// Op identifies a drawing command.
type Op uint8

const (
	// OpMoveTo starts a new stroke at the command point.
	OpMoveTo Op = iota
	// OpLineTo draws a straight segment from the previous point.
	OpLineTo
)

// String returns the PostScript operator name for the op.
func (op Op) String() string {
	if op == OpMoveTo {
		return "moveto"
	}
	return "lineto"
}

// Command is a single drawing instruction in document coordinates.
type Command struct {
	Op    Op
	Point geometry.Point
}

// Document is a serialized drawing: the ordered command list plus the canvas
// size it was produced against. Strokes counts the MoveTo commands, one per
// rendered path.
type Document struct {
	Width    float64
	Height   float64
	Commands []Command
	Strokes  int
}

// SerializeOptions control the coordinate convention of the command stream.
type SerializeOptions struct {
	// FlipY maps y to height-y for bottom-left-origin targets (print,
	// PostScript). Leave false for top-left-origin targets (SVG, screens).
	FlipY bool
}

// Serialize emits MoveTo for the first point of each path and LineTo for the
// rest. Paths with fewer than 2 points produce no commands: a single point
// has no stroke direction and prints as nothing.
func Serialize(paths geometry.Collection, width, height int, opts SerializeOptions) Document {
	doc := Document{Width: float64(width), Height: float64(height)}
	for _, p := range paths {
		if len(p) < 2 {
			continue
		}
		doc.Strokes++
		for i, pt := range p {
			if opts.FlipY {
				pt.Y = doc.Height - pt.Y
			}
			op := OpLineTo
			if i == 0 {
				op = OpMoveTo
			}
			doc.Commands = append(doc.Commands, Command{Op: op, Point: pt})
		}
	}
	return doc
}

// Paths splits the command stream back into per-stroke point sequences, in
// document orientation. Sinks that emit whole paths rather than individual
// commands (per-path headers, path arrays) consume this view.
func (d Document) Paths() geometry.Collection {
	var c geometry.Collection
	for _, cmd := range d.Commands {
		if cmd.Op == OpMoveTo {
			c = append(c, geometry.Path{cmd.Point})
			continue
		}
		if len(c) == 0 {
			continue
		}
		c[len(c)-1] = append(c[len(c)-1], cmd.Point)
	}
	return c
}

// StrokePoints converts a stroke width in pixels to typographic points.
func StrokePoints(widthPx float64) float64 {
	return widthPx / PointsPerInch
}

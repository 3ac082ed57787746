package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/geometry"
)

// Document is the JSON interchange form of a traced drawing: canvas
// dimensions, the stroke width used for rendering, and every path as an
// array of [x, y] pairs. It is the payload the trace stage writes and the
// refine and render stages read back.
type Document struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	StrokeWidth float64        `json:"stroke_width,omitempty"`
	Paths       [][][2]float64 `json:"paths"`
}

// New builds a Document from a path collection and canvas dimensions.
// The document holds its own copy of the coordinates, so the collection
// can be modified freely afterwards.
func New(c geometry.Collection, width, height int, strokeWidth float64) Document {
	doc := Document{
		Width:       width,
		Height:      height,
		StrokeWidth: strokeWidth,
		Paths:       make([][][2]float64, len(c)),
	}
	for i, p := range c {
		pts := make([][2]float64, len(p))
		for j, pt := range p {
			pts[j] = [2]float64{pt.X, pt.Y}
		}
		doc.Paths[i] = pts
	}
	return doc
}

// Collection converts the document paths back into geometry paths.
// The result is independent of the document.
func (d Document) Collection() geometry.Collection {
	c := make(geometry.Collection, len(d.Paths))
	for i, pts := range d.Paths {
		p := make(geometry.Path, len(pts))
		for j, xy := range pts {
			p[j] = geometry.Point{X: xy[0], Y: xy[1]}
		}
		c[i] = p
	}
	return c
}

// WriteJSON encodes a paths document as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode paths document")
	}
	return nil
}

// ExportFile writes a paths document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportFile(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}

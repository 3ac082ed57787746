package io

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/matzehuels/linetrace/pkg/errors"
)

// ReadJSON decodes a paths document from r.
//
// The input must be a JSON object with canvas dimensions and a "paths"
// array holding one [x, y] pair array per path:
//
//	{
//	  "width": 400,
//	  "height": 300,
//	  "stroke_width": 2,
//	  "paths": [
//	    [[10, 20], [11, 20], [12, 21]]
//	  ]
//	}
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - Width or height is not positive
//   - A path has no points
//   - A coordinate is NaN or infinite
//
// Validation errors name the offending path by index. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode paths document")
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ImportFile reads a JSON paths document from the file at path.
//
// ImportFile opens the file, decodes it using [ReadJSON], and closes the
// file. It returns the same validation errors as [ReadJSON] for malformed
// documents.
func ImportFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Validate checks the document invariants: positive canvas dimensions, at
// least one point per path, and finite coordinates. [ReadJSON] calls it on
// every decoded document; callers assembling documents by hand can use it
// directly.
func (d Document) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid canvas size %dx%d", d.Width, d.Height)
	}
	for i, pts := range d.Paths {
		if len(pts) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "path %d: no points", i)
		}
		for j, xy := range pts {
			if !finite(xy[0]) || !finite(xy[1]) {
				return errors.New(errors.ErrCodeInvalidInput, "path %d: point %d is not finite", i, j)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package render

import (
	"encoding/json"

	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/io"
	"github.com/matzehuels/linetrace/pkg/vector"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	strokeWidth float64
}

// WithJSONStrokeWidth records the stroke width in the exported document so
// a later render run reproduces the same line weight.
func WithJSONStrokeWidth(w float64) JSONOption {
	return func(r *jsonRenderer) { r.strokeWidth = w }
}

// RenderJSON exports the document as the paths interchange payload defined
// in [io]: canvas dimensions plus one [x, y] pair array per stroke. The
// output round-trips through [io.ReadJSON], so a JSON artifact can be fed
// straight back into the refine and render stages.
func RenderJSON(doc vector.Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{strokeWidth: 2}
	for _, opt := range opts {
		opt(&r)
	}

	out := io.New(doc.Paths(), int(doc.Width), int(doc.Height), r.strokeWidth)
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal paths document")
	}
	return data, nil
}

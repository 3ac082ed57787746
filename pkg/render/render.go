package render

import (
	"strconv"
	"strings"

	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/vector"
)

// Format identifies an output sink.
type Format string

// Supported output formats.
const (
	FormatSVG  Format = "svg"
	FormatEPS  Format = "eps"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// ValidFormats lists the supported formats in display order.
func ValidFormats() []Format {
	return []Format{FormatSVG, FormatEPS, FormatPNG, FormatJSON}
}

// ParseFormat normalizes a format name and rejects unknown ones.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatSVG, FormatEPS, FormatPNG, FormatJSON:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (valid: svg, eps, png, json)", s)
}

// Ext returns the file extension for the format, leading dot included.
func (f Format) Ext() string {
	return "." + string(f)
}

// FlipY reports whether the format's coordinate system has a bottom-left
// origin. The serializer must flip the vertical axis for such targets
// before the sink runs.
func (f Format) FlipY() bool {
	return f == FormatEPS
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatEPS:
		return "application/postscript"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Render dispatches doc to the sink for f with the given stroke width.
// Callers needing more control (colors, titles, scale) invoke the sink
// functions directly with their own options.
func Render(f Format, doc vector.Document, strokeWidth float64) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(doc, WithStrokeWidth(strokeWidth)), nil
	case FormatEPS:
		return RenderEPS(doc, WithEPSStrokeWidth(strokeWidth)), nil
	case FormatPNG:
		return RenderPNG(doc, WithPNGStrokeWidth(strokeWidth))
	case FormatJSON:
		return RenderJSON(doc, WithJSONStrokeWidth(strokeWidth))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", string(f))
}

// fmtCoord prints a coordinate with at most prec decimal places, trimming
// trailing zeros so integral values stay compact. A negative prec prints
// the shortest exact representation.
func fmtCoord(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if prec > 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

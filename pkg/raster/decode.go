package raster

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	// Register the formats a prepared mask commonly arrives in. PNG, JPEG,
	// and GIF come from the standard library; BMP and TIFF via x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/matzehuels/linetrace/pkg/errors"
)

// DefaultThreshold is the gray cutoff for binarization on the 0-255 scale.
// Prepared masks are effectively bilevel, so anything near the middle works.
const DefaultThreshold = 128

// Decode reads an encoded image and binarizes it into a mask.
//
// The image is converted to grayscale first; a pixel is foreground when its
// gray value is at or above threshold. Masks produced by edge detectors mark
// lines bright on dark, which matches that rule directly; scanned line art is
// usually dark-on-light and needs invert.
func Decode(r io.Reader, threshold uint8, invert bool) (*Mask, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMask, err, "decode mask image")
	}
	return FromImage(img, threshold, invert)
}

// FromImage binarizes a decoded image into a mask. See Decode for the
// threshold and invert semantics.
func FromImage(img image.Image, threshold uint8, invert bool) (*Mask, error) {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()

	m, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			// Grayscale output has R == G == B.
			v := gray.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y).R
			fg := v >= threshold
			if invert {
				fg = !fg
			}
			m.Set(x, y, fg)
		}
	}
	return m, nil
}

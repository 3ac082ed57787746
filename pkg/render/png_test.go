package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matzehuels/linetrace/pkg/geometry"
	"github.com/matzehuels/linetrace/pkg/vector"
)

func horizontalStroke() vector.Document {
	paths := geometry.Collection{{{X: 10, Y: 20}, {X: 90, Y: 20}}}
	return vector.Serialize(paths, 100, 40, vector.SerializeOptions{})
}

func TestRenderPNG_Dimensions(t *testing.T) {
	data, err := RenderPNG(horizontalStroke())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 100 || b.Dy() != 40 {
		t.Errorf("image size = %dx%d, want 100x40", b.Dx(), b.Dy())
	}
}

func TestRenderPNG_Scale(t *testing.T) {
	data, err := RenderPNG(horizontalStroke(), WithPNGScale(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 80 {
		t.Errorf("image size = %dx%d, want 200x80", b.Dx(), b.Dy())
	}
}

func TestRenderPNG_Pixels(t *testing.T) {
	data, err := RenderPNG(horizontalStroke(), WithPNGStrokeWidth(4))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Ground stays white away from the stroke.
	if r, g, b, _ := img.At(2, 2).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("background pixel = %v, want white", img.At(2, 2))
	}
	// Stroke center is black.
	if r, g, b, _ := img.At(50, 20).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("stroke pixel = %v, want black", img.At(50, 20))
	}
}

func TestRenderPNG_EmptyDocument(t *testing.T) {
	doc := vector.Serialize(nil, 30, 30, vector.SerializeOptions{})

	data, err := RenderPNG(doc)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, g, b, _ := img.At(15, 15).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("pixel = %v, want all white", img.At(15, 15))
	}
}

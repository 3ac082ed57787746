package io

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/geometry"
)

func samplePaths() geometry.Collection {
	return geometry.Collection{
		{{X: 10, Y: 20}, {X: 11, Y: 20}, {X: 12.5, Y: 21.25}},
		{{X: 50, Y: 80}, {X: 50, Y: 81}},
	}
}

func TestRoundTrip(t *testing.T) {
	doc := New(samplePaths(), 400, 300, 2)

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if got.Width != 400 || got.Height != 300 {
		t.Errorf("dimensions = %dx%d, want 400x300", got.Width, got.Height)
	}
	if got.StrokeWidth != 2 {
		t.Errorf("StrokeWidth = %v, want 2", got.StrokeWidth)
	}

	want := samplePaths()
	c := got.Collection()
	if len(c) != len(want) {
		t.Fatalf("path count = %d, want %d", len(c), len(want))
	}
	for i := range want {
		if len(c[i]) != len(want[i]) {
			t.Fatalf("path %d: point count = %d, want %d", i, len(c[i]), len(want[i]))
		}
		for j := range want[i] {
			if c[i][j] != want[i][j] {
				t.Errorf("path %d point %d = %v, want %v", i, j, c[i][j], want[i][j])
			}
		}
	}
}

func TestNew_CopiesCoordinates(t *testing.T) {
	paths := samplePaths()
	doc := New(paths, 400, 300, 2)

	paths[0][0] = geometry.Point{X: -99, Y: -99}

	if got := doc.Paths[0][0]; got != [2]float64{10, 20} {
		t.Errorf("document coordinate = %v, want [10 20]", got)
	}
}

func TestWriteJSON_OmitsZeroStrokeWidth(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(New(samplePaths(), 10, 10, 0), &buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if strings.Contains(buf.String(), "stroke_width") {
		t.Errorf("zero stroke width serialized: %s", buf.String())
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"width": 10,`},
		{"zero width", `{"width": 0, "height": 10, "paths": []}`},
		{"negative height", `{"width": 10, "height": -3, "paths": []}`},
		{"empty path", `{"width": 10, "height": 10, "paths": [[]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestReadJSON_EmptyDocument(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{"width": 10, "height": 10, "paths": []}`))
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if got := len(doc.Collection()); got != 0 {
		t.Errorf("path count = %d, want 0", got)
	}
}

func TestValidate_NonFinite(t *testing.T) {
	doc := Document{
		Width:  10,
		Height: 10,
		Paths:  [][][2]float64{{{1, 2}, {math.NaN(), 3}}},
	}
	err := doc.Validate()
	if err == nil {
		t.Fatal("expected error for NaN coordinate, got nil")
	}
	if !strings.Contains(err.Error(), "path 0") {
		t.Errorf("error does not name the path: %v", err)
	}
}

func TestImportExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.json")

	if err := ExportFile(New(samplePaths(), 400, 300, 2), path); err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}

	doc, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if got := len(doc.Paths); got != 2 {
		t.Errorf("path count = %d, want 2", got)
	}
}

func TestImportFile_Missing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %s, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

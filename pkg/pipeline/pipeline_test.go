package pipeline

import (
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"eps", false},
		{"png", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive; ValidateForRender normalizes first
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateTraversal(t *testing.T) {
	tests := []struct {
		traversal string
		wantErr   bool
	}{
		{"dfs", false},
		{"bfs", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateTraversal(tt.traversal)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTraversal(%q) error = %v, wantErr %v", tt.traversal, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateForTrace(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}

	// Check defaults were set
	if opts.MinPoints != DefaultMinPoints {
		t.Errorf("MinPoints should be %d, got %d", DefaultMinPoints, opts.MinPoints)
	}
	if opts.BridgeGap != DefaultBridgeGap {
		t.Errorf("BridgeGap should be %v, got %v", float64(DefaultBridgeGap), opts.BridgeGap)
	}
	if opts.Traversal != DefaultTraversal {
		t.Errorf("Traversal should be %s, got %s", DefaultTraversal, opts.Traversal)
	}
	if opts.Threshold != DefaultThreshold {
		t.Errorf("Threshold should be %d, got %d", DefaultThreshold, opts.Threshold)
	}
}

func TestOptionsValidateForTrace(t *testing.T) {
	// Threshold outside the byte range
	opts := Options{Threshold: 300}
	if err := opts.ValidateForTrace(); err == nil {
		t.Error("Threshold over 255 should fail")
	}

	opts = Options{Threshold: -1}
	if err := opts.ValidateForTrace(); err == nil {
		t.Error("Negative threshold should fail")
	}

	// Unknown traversal
	opts = Options{Traversal: "sideways"}
	if err := opts.ValidateForTrace(); err == nil {
		t.Error("Unknown traversal should fail")
	}

	// Negative bridge gap disables bridging and is valid
	opts = Options{BridgeGap: -1}
	if err := opts.ValidateForTrace(); err != nil {
		t.Errorf("Negative bridge gap should pass: %v", err)
	}
	if opts.BridgeGap != -1 {
		t.Errorf("Negative bridge gap should survive validation, got %v", opts.BridgeGap)
	}
}

func TestOptionsValidateForRefine(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRefine(); err != nil {
		t.Errorf("Empty options should pass: %v", err)
	}
	if opts.Filters != DefaultFilters {
		t.Errorf("Filters should be %q, got %q", DefaultFilters, opts.Filters)
	}
	if opts.MergeTolerance != DefaultMergeTolerance {
		t.Errorf("MergeTolerance should be %v, got %v", float64(DefaultMergeTolerance), opts.MergeTolerance)
	}

	// Unknown filter name
	opts = Options{Filters: "sharpen=3"}
	if err := opts.ValidateForRefine(); err == nil {
		t.Error("Unknown filter should fail")
	}

	// Unparseable argument
	opts = Options{Filters: "smooth=abc"}
	if err := opts.ValidateForRefine(); err == nil {
		t.Error("Bad filter argument should fail")
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	// Formats are normalized and deduplicated
	opts := Options{Formats: []string{" SVG ", "svg", "Json"}}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("Mixed-case formats should pass: %v", err)
	}
	if len(opts.Formats) != 2 || opts.Formats[0] != "svg" || opts.Formats[1] != "json" {
		t.Errorf("Formats should normalize to [svg json], got %v", opts.Formats)
	}

	// Unknown format
	opts = Options{Formats: []string{"bmp"}}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("Unknown format should fail")
	}

	// Negative stroke width
	opts = Options{StrokeWidth: -2}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("Negative stroke width should fail")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.StrokeWidth != DefaultStrokeWidth {
		t.Errorf("StrokeWidth should be %v, got %v", float64(DefaultStrokeWidth), opts.StrokeWidth)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalMinPoints := opts.MinPoints
	originalFilters := opts.Filters
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.MinPoints != originalMinPoints {
		t.Error("MinPoints changed on second call")
	}
	if opts.Filters != originalFilters {
		t.Error("Filters changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestOptionsKeyOpts(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("validation failed: %v", err)
	}

	traceOpts := opts.TraceKeyOpts()
	if traceOpts.MinPoints != opts.MinPoints || traceOpts.Traversal != opts.Traversal {
		t.Errorf("TraceKeyOpts should carry validated fields, got %+v", traceOpts)
	}

	refineOpts := opts.RefineKeyOpts()
	if refineOpts.Filters != opts.Filters {
		t.Errorf("RefineKeyOpts should carry the filter chain, got %+v", refineOpts)
	}

	artifactOpts := opts.ArtifactKeyOpts("svg")
	if artifactOpts.Format != "svg" || artifactOpts.StrokeWidth != opts.StrokeWidth {
		t.Errorf("ArtifactKeyOpts should carry format and stroke width, got %+v", artifactOpts)
	}
}

package cli

import (
	"testing"

	"github.com/matzehuels/linetrace/pkg/pipeline"
)

func TestApplyPresetFillsUnsetOptions(t *testing.T) {
	opts := pipeline.Options{}
	if err := applyPreset(&opts, "smooth"); err != nil {
		t.Fatalf("applyPreset() error: %v", err)
	}

	if opts.MinPoints != 60 {
		t.Errorf("MinPoints = %d, want the preset's 60", opts.MinPoints)
	}
	if opts.Filters == "" {
		t.Error("Filters should be filled from the preset")
	}
	if opts.Preset != "smooth" {
		t.Errorf("Preset = %q, want %q", opts.Preset, "smooth")
	}
}

func TestApplyPresetKeepsExplicitFlags(t *testing.T) {
	opts := pipeline.Options{MinPoints: 7}
	if err := applyPreset(&opts, "smooth"); err != nil {
		t.Fatalf("applyPreset() error: %v", err)
	}
	if opts.MinPoints != 7 {
		t.Errorf("MinPoints = %d, explicit flag value should win over the preset", opts.MinPoints)
	}
}

func TestApplyPresetEmptyNameIsNoop(t *testing.T) {
	opts := pipeline.Options{}
	if err := applyPreset(&opts, ""); err != nil {
		t.Fatalf("applyPreset() error: %v", err)
	}
	if opts.MinPoints != 0 {
		t.Error("empty preset name should leave options untouched")
	}
}

func TestApplyPresetUnknownName(t *testing.T) {
	opts := pipeline.Options{}
	if err := applyPreset(&opts, "no-such-preset"); err == nil {
		t.Error("applyPreset with an unknown name should fail")
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{2.5, "2.5"},
		{1.25, "1.25"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

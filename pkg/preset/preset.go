// Package preset provides named parameter profiles for the pipeline.
//
// A preset bundles trace, refine, and render options under a single name so
// a tuned configuration can be recalled instead of repeated. Builtin presets
// are embedded in the binary; user presets in the config directory override
// builtins with the same name.
//
// # Format
//
// Presets are TOML files with sections mirroring pipeline.Options:
//
//	name = "smooth"
//	description = "Heavy smoothing for flowing strokes"
//
//	[trace]
//	min_points = 60
//	bridge_gap = 30
//
//	[refine]
//	filters = "decimate=2,smooth=9,chaikin=3,simplify=1.5"
//	merge_tolerance = 8
//
//	[render]
//	stroke_width = 2.5
package preset

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/filter"
	"github.com/matzehuels/linetrace/pkg/pipeline"
)

// Preset is a named parameter profile. Zero-valued fields are "not set" and
// leave the pipeline defaults in place when applied.
type Preset struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`

	Trace struct {
		MinPoints int     `toml:"min_points"`
		BridgeGap float64 `toml:"bridge_gap"`
		Traversal string  `toml:"traversal"`
		Threshold int     `toml:"threshold"`
		Invert    bool    `toml:"invert"`
	} `toml:"trace"`

	Refine struct {
		Filters        string  `toml:"filters"`
		MergeTolerance float64 `toml:"merge_tolerance"`
	} `toml:"refine"`

	Render struct {
		Formats     []string `toml:"formats"`
		StrokeWidth float64  `toml:"stroke_width"`
	} `toml:"render"`
}

// Parse decodes and validates a single preset document.
func Parse(data []byte) (*Preset, error) {
	var p Preset
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse preset")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads a preset from a TOML file.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read preset %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Apply copies the preset's parameters onto opts, filling only fields the
// caller left unset so explicit flags win over the preset.
func (p *Preset) Apply(opts *pipeline.Options) {
	if opts.MinPoints == 0 {
		opts.MinPoints = p.Trace.MinPoints
	}
	if opts.BridgeGap == 0 {
		opts.BridgeGap = p.Trace.BridgeGap
	}
	if opts.Traversal == "" {
		opts.Traversal = p.Trace.Traversal
	}
	if opts.Threshold == 0 {
		opts.Threshold = p.Trace.Threshold
	}
	if p.Trace.Invert {
		opts.Invert = true
	}
	if opts.Filters == "" {
		opts.Filters = p.Refine.Filters
	}
	if opts.MergeTolerance == 0 {
		opts.MergeTolerance = p.Refine.MergeTolerance
	}
	if len(opts.Formats) == 0 && len(p.Render.Formats) > 0 {
		opts.Formats = append([]string(nil), p.Render.Formats...)
	}
	if opts.StrokeWidth == 0 {
		opts.StrokeWidth = p.Render.StrokeWidth
	}
	if opts.Preset == "" {
		opts.Preset = p.Name
	}
}

func (p *Preset) validate() error {
	if p.Name == "" {
		return errors.New(errors.ErrCodeInvalidPreset, "preset missing name")
	}
	if p.Trace.Threshold < 0 || p.Trace.Threshold > 255 {
		return errors.New(errors.ErrCodeInvalidPreset, "preset %s: threshold must be 0-255, got %d", p.Name, p.Trace.Threshold)
	}
	if p.Trace.Traversal != "" {
		if err := pipeline.ValidateTraversal(p.Trace.Traversal); err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
	}
	if p.Refine.Filters != "" {
		if _, err := filter.Parse(p.Refine.Filters); err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
	}
	if err := pipeline.ValidateFormats(p.Render.Formats); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}
	return nil
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linetrace/pkg/pipeline"
	"github.com/matzehuels/linetrace/pkg/preset"
)

// presetCommand creates the preset management command.
func (c *CLI) presetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "List, show, and pick parameter presets",
	}

	cmd.AddCommand(c.presetListCommand())
	cmd.AddCommand(c.presetShowCommand())
	cmd.AddCommand(c.presetPickCommand())
	cmd.AddCommand(c.presetPathCommand())

	return cmd
}

// presetListCommand creates the "preset list" subcommand.
func (c *CLI) presetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := preset.LoadLibrary()
			if err != nil {
				return err
			}
			for _, p := range lib.All() {
				fmt.Println(StyleHighlight.Render(fmt.Sprintf("%-10s", p.Name)) + " " + StyleDim.Render(p.Description))
			}
			printNewline()
			if dir, err := preset.UserDir(); err == nil {
				printDetail("User presets: %s/*.toml", dir)
			}
			return nil
		},
	}
}

// presetShowCommand creates the "preset show" subcommand.
func (c *CLI) presetShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a preset's parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := preset.LoadLibrary()
			if err != nil {
				return err
			}
			p, err := lib.Get(args[0])
			if err != nil {
				return err
			}
			printPreset(p)
			return nil
		},
	}
}

// presetPickCommand creates the "preset pick" subcommand, an interactive
// picker over the library.
func (c *CLI) presetPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a preset interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := preset.LoadLibrary()
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewPresetListModel(lib.All())).Run()
			if err != nil {
				return fmt.Errorf("run picker: %w", err)
			}
			model, ok := final.(PresetListModel)
			if !ok || model.Selected == nil {
				return nil
			}

			p := model.Selected
			printSuccess("Preset %s", p.Name)
			printDetail("%s", p.Description)
			printNewline()
			printNextStep("Use it", fmt.Sprintf("linetrace run mask.png --preset %s", p.Name))
			return nil
		},
	}
}

// presetPathCommand creates the "preset path" subcommand.
func (c *CLI) presetPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the user preset directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := preset.UserDir()
			if err != nil {
				return fmt.Errorf("get preset dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// printPreset prints every parameter a preset sets. Unset parameters keep
// the pipeline defaults and are omitted.
func printPreset(p *preset.Preset) {
	printKeyValue("Name", p.Name)
	if p.Description != "" {
		printKeyValue("About", p.Description)
	}
	if p.Trace.MinPoints > 0 {
		printKeyValue("Min points", strconv.Itoa(p.Trace.MinPoints))
	}
	if p.Trace.BridgeGap != 0 {
		printKeyValue("Bridge gap", formatFloat(p.Trace.BridgeGap))
	}
	if p.Trace.Traversal != "" {
		printKeyValue("Traversal", p.Trace.Traversal)
	}
	if p.Trace.Threshold > 0 {
		printKeyValue("Threshold", strconv.Itoa(p.Trace.Threshold))
	}
	if p.Trace.Invert {
		printKeyValue("Invert", "yes")
	}
	if p.Refine.Filters != "" {
		printKeyValue("Filters", p.Refine.Filters)
	}
	if p.Refine.MergeTolerance != 0 {
		printKeyValue("Merge tol", formatFloat(p.Refine.MergeTolerance))
	}
	if len(p.Render.Formats) > 0 {
		printKeyValue("Formats", strings.Join(p.Render.Formats, ", "))
	}
	if p.Render.StrokeWidth > 0 {
		printKeyValue("Stroke", formatFloat(p.Render.StrokeWidth))
	}
}

// formatFloat renders a float without trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// applyPreset fills unset options from a named preset. Explicit flags win
// because Apply only touches zero-valued fields.
func applyPreset(opts *pipeline.Options, name string) error {
	if name == "" {
		return nil
	}
	lib, err := preset.LoadLibrary()
	if err != nil {
		return err
	}
	p, err := lib.Get(name)
	if err != nil {
		return err
	}
	p.Apply(opts)
	return nil
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linetrace/pkg/history"
)

// historyCommand creates the history command. Bare "history" lists recent
// runs; "history clear" removes them.
func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}
			if len(entries) == 0 {
				printInfo("No runs recorded yet")
				return nil
			}

			for _, e := range entries {
				fmt.Println(historyLine(e))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "most recent runs to show, 0 for all")
	cmd.AddCommand(c.historyClearCommand())

	return cmd
}

// historyClearCommand creates the "history clear" subcommand.
func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}

			count, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("Removed %d run(s)", count)
			printDetail("Directory: %s", store.Path())
			return nil
		},
	}
}

// historyLine formats one run as a two-line list entry.
func historyLine(e history.Entry) string {
	summary := fmt.Sprintf("%d paths · %d points · %s",
		e.Paths, e.Points, e.Duration.Round(time.Millisecond))
	if e.Preset != "" {
		summary += " · " + e.Preset
	}
	return StyleDim.Render(fmt.Sprintf("%-10s", formatRelativeTime(e.CreatedAt))) + " " +
		StyleValue.Render(e.Input) + "\n" +
		"           " + StyleDim.Render(summary)
}

// formatRelativeTime renders recent timestamps relative to now and older
// ones as a plain date.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

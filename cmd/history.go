package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent package loads",
	Long: `Show the load history, newest first. The history lives in the per-user
state directory ($MINIATURE_HOME, else $XDG_STATE_HOME/miniature, else the
user config directory) unless history.path names a file. Recording can be
turned off with history.enabled: false.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries (0 for all)")
	historyCmd.Flags().Bool("json", false, "print the entries as JSON")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if !cfg.History.Enabled {
		return errors.New("load history is disabled")
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("No loads recorded"))
		return nil
	}

	for _, e := range entries {
		when := dimStyle.Render(e.LoadedAt.Local().Format("2006-01-02 15:04:05"))

		if e.Success {
			printStatus(true, fmt.Sprintf("%s %s %s -> %s (%s)",
				when, e.Path, valueStyle.Render(e.Resolved), e.TargetDir, e.Repo))

			continue
		}

		printStatus(false, fmt.Sprintf("%s %s %s: %s (%s)",
			when, e.Path, e.Requested, e.Error, e.Repo))
	}

	return nil
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup <db-repo> <local-path>",
	Short: "Clone and register a database repository",
	Long: `Clone a database repository into local-path and record it in the
registry. An existing working copy of the same repository is registered
without cloning; a different repository at that path is refused.

Examples:
  miniature setup https://github.com/acme/db.git ~/src/acme-db`,
	Args: cobra.ExactArgs(2),
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runSetup(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.engine.Setup(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(out)
	}

	printStatus(true, out.Message)

	return nil
}

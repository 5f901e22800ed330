package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <db-repo> <version>",
	Short: "Show which tag a version request resolves to",
	Long: `Resolve a version request against the tags of a registered repository
without checking anything out.

Examples:
  miniature resolve https://github.com/acme/db.git latest
  miniature resolve https://github.com/acme/db.git ">=1.0.0,<2.0.0" --scope widgets`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("scope", "", "only consider tags with this prefix")
}

func runResolve(cmd *cobra.Command, args []string) error {
	scope, _ := cmd.Flags().GetString("scope")

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	tag, err := s.engine.ResolveVersion(context.Background(), args[0], args[1], scope)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stdout, tag)

	return nil
}

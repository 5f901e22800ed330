package cmd

import (
	"context"
	"errors"

	"github.com/inovacc/miniature/internal/core"
	"github.com/spf13/cobra"
)

var tagRemoveCmd = &cobra.Command{
	Use:     "remove <db-repo> <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a tag locally and on the remote",
	Long: `Remove a tag from a registered working copy and from its remote.
A tag that does not exist is reported, not treated as an error.

Examples:
  miniature tag remove https://github.com/acme/db.git widgets/1.2.0
  miniature tag remove https://github.com/acme/db.git widgets/1.2.0 --local-only`,
	Args: cobra.ExactArgs(2),
	RunE: runTagRemove,
}

func init() {
	tagCmd.AddCommand(tagRemoveCmd)
	tagRemoveCmd.Flags().String("remote", "", "remote to delete the tag from (default from config)")
	tagRemoveCmd.Flags().Bool("local-only", false, "do not touch the remote")
	tagRemoveCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	remote, _ := cmd.Flags().GetString("remote")
	localOnly, _ := cmd.Flags().GetBool("local-only")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if remote == "" {
		remote = s.engine.Remote()
	}

	if localOnly {
		remote = ""
	}

	out, err := s.engine.RemoveTag(context.Background(), args[0], args[1], remote)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		printStatus(out.Local != core.RemovalNotDeleted, out.LocalMessage)

		if out.RemoteMessage != "" {
			printStatus(out.Remote != core.RemovalNotDeleted, out.RemoteMessage)
		}
	}

	if out.Remote == core.RemovalNotDeleted {
		return errors.New("remote tag was not deleted")
	}

	return nil
}

package cmd

import (
	"context"

	"github.com/inovacc/miniature/internal/core"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push [package-dir]",
	Short: "Commit a package into its database repository",
	Long: `Copy a package directory into the working copy named by its metadata
file, commit it on the metadata branch and push that branch.

The metadata file (default pkg.json) must name the repository:

  {"db-repo": "https://github.com/acme/db.git", "root-dir": "widgets"}

Examples:
  miniature push
  miniature push ./widgets -m "Widgets: fix rendering"
  miniature push ./widgets --no-push`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().String("meta", "", "metadata file name (default from config)")
	pushCmd.Flags().StringP("message", "m", "", "commit message")
	pushCmd.Flags().Bool("no-push", false, "commit without pushing")
	pushCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runPush(cmd *cobra.Command, args []string) error {
	meta, _ := cmd.Flags().GetString("meta")
	message, _ := cmd.Flags().GetString("message")
	noPush, _ := cmd.Flags().GetBool("no-push")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if meta == "" {
		meta = cfg.MetaFile
	}

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.engine.Push(context.Background(), core.PushOptions{
		PackageDir:    dir,
		MetaFile:      meta,
		CommitMessage: message,
		Push:          !noPush,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		printStatus(out.Success, out.Message)
	}

	if !out.Success {
		return failure("push failed", out.Err)
	}

	return nil
}

package cmd

import (
	"context"

	"github.com/inovacc/miniature/internal/core"
	"github.com/spf13/cobra"
)

var tagCreateCmd = &cobra.Command{
	Use:   "create <db-repo> <name>",
	Short: "Create an annotated tag",
	Long: `Create an annotated tag at the current commit of a registered working copy.
An existing tag is refused unless --force is given.

Examples:
  miniature tag create https://github.com/acme/db.git widgets/1.2.0
  miniature tag create https://github.com/acme/db.git widgets/1.2.0 -m "Widgets 1.2.0" --force --push`,
	Args: cobra.ExactArgs(2),
	RunE: runTagCreate,
}

func init() {
	tagCmd.AddCommand(tagCreateCmd)
	tagCreateCmd.Flags().StringP("message", "m", "", "tag message (default: the tag name)")
	tagCreateCmd.Flags().Bool("force", false, "overwrite an existing tag")
	tagCreateCmd.Flags().Bool("push", false, "push the tag to the remote")
	tagCreateCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runTagCreate(cmd *cobra.Command, args []string) error {
	message, _ := cmd.Flags().GetString("message")
	force, _ := cmd.Flags().GetBool("force")
	push, _ := cmd.Flags().GetBool("push")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.engine.CreateTag(context.Background(), core.TagOptions{
		Repo:    args[0],
		Name:    args[1],
		Message: message,
		Force:   force,
		Push:    push,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(out)
	}

	printStatus(true, out.Message)

	return nil
}

package cmd

import (
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Create or remove release tags",
	Long: `Create or remove annotated tags in the working copy of a registered
repository, optionally on its remote too.

Available Commands:
  create      Create (or overwrite) a tag
  remove      Remove a tag locally and on the remote`,
}

func init() {
	rootCmd.AddCommand(tagCmd)
}

package cmd

import (
	"github.com/spf13/cobra"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and edit the repository registry",
	Long: `The registry maps database repositories to local working copies.

Available Commands:
  list      List registered repositories
  remove    Forget a repository (files stay on disk)`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
}

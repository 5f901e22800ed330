package cmd

import (
	"github.com/spf13/cobra"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Hosted database repository operations",
	Long: `Create and delete database repositories on GitHub.

The token is taken from --token, GITHUB_TOKEN, GH_TOKEN or the gh CLI.

Available Commands:
  create    Create a repository and set it up locally
  delete    Delete a repository`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(repoCmd)
	repoCmd.PersistentFlags().String("token", "", "GitHub token")
}

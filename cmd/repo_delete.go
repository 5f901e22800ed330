package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/inovacc/miniature/internal/auth"
	"github.com/inovacc/miniature/internal/giturl"
	"github.com/inovacc/miniature/internal/hosting"
	"github.com/spf13/cobra"
)

var repoDeleteCmd = &cobra.Command{
	Use:   "delete <owner/name>",
	Short: "Delete a database repository on GitHub",
	Long: `Delete a repository on GitHub and forget it in the registry. The local
working copy stays on disk. The token needs the delete_repo scope.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepoDelete,
}

func init() {
	repoCmd.AddCommand(repoDeleteCmd)
	repoDeleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

func runRepoDelete(cmd *cobra.Command, args []string) error {
	token, _ := cmd.Flags().GetString("token")
	yes, _ := cmd.Flags().GetBool("yes")

	ref, err := giturl.ParseRepository(args[0])
	if err != nil {
		return err
	}

	if !yes && !promptConfirm(fmt.Sprintf("Delete %s permanently? [y/N]: ", ref.FullName())) {
		_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("Cancelled"))
		return nil
	}

	resolved, err := auth.GitHubResolver(token, ref.Host).Resolve()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err := hosting.NewGitHub(ctx, resolved.Token, logger).DeleteRepo(ctx, ref.Owner, ref.Name); err != nil {
		return err
	}

	printStatus(true, fmt.Sprintf("Deleted %s", ref.FullName()))

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, entry := range s.registry.Entries() {
		if !giturl.SameRepository(entry.Repo, ref.CloneURL()) {
			continue
		}

		if _, err := s.engine.Forget(entry.Repo); err != nil {
			return err
		}

		printStatus(true, fmt.Sprintf("Removed %s from the registry", entry.Repo))
	}

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inovacc/miniature/internal/auth"
	"github.com/inovacc/miniature/internal/giturl"
	"github.com/inovacc/miniature/internal/hosting"
	"github.com/spf13/cobra"
)

var repoCreateCmd = &cobra.Command{
	Use:   "create <owner/name>",
	Short: "Create a database repository on GitHub",
	Long: `Create a database repository on GitHub with an initial commit. With
--path the new repository is cloned and registered as setup would.

Examples:
  miniature repo create acme/db --private
  miniature repo create acme/db --path ~/src/acme-db --description "Acme packages"`,
	Args: cobra.ExactArgs(1),
	RunE: runRepoCreate,
}

func init() {
	repoCmd.AddCommand(repoCreateCmd)
	repoCreateCmd.Flags().String("description", "", "repository description")
	repoCreateCmd.Flags().Bool("private", false, "create a private repository")
	repoCreateCmd.Flags().String("path", "", "clone and register the repository here")
}

func runRepoCreate(cmd *cobra.Command, args []string) error {
	token, _ := cmd.Flags().GetString("token")
	description, _ := cmd.Flags().GetString("description")
	private, _ := cmd.Flags().GetBool("private")
	path, _ := cmd.Flags().GetString("path")

	ref, err := giturl.ParseRepository(args[0])
	if err != nil {
		return err
	}

	resolved, err := auth.GitHubResolver(token, ref.Host).Resolve()
	if err != nil {
		return err
	}

	logger.Debug("using GitHub token", slog.String("source", resolved.Name))

	ctx := context.Background()

	repo, err := hosting.NewGitHub(ctx, resolved.Token, logger).
		CreateRepo(ctx, ref.Owner, ref.Name, description, private)
	if err != nil {
		return err
	}

	printStatus(true, fmt.Sprintf("Created %s", valueStyle.Render(repo.HTMLURL)))

	if path == "" {
		return nil
	}

	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.engine.Setup(ctx, repo.CloneURL, path)
	if err != nil {
		return err
	}

	printStatus(true, out.Message)

	return nil
}

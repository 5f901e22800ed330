// Package hosting manages remote repositories on the hosting service. The
// package engine never calls it; it backs the repo commands of the CLI.
package hosting

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"
)

// Repo describes a hosted repository.
type Repo struct {
	FullName string
	CloneURL string
	HTMLURL  string
	Private  bool
}

// GitHub creates and deletes repositories through the GitHub API.
type GitHub struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHub returns a client authenticated with token.
func NewGitHub(ctx context.Context, token string, logger *slog.Logger) *GitHub {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	return NewGitHubWithClient(github.NewClient(oauth2.NewClient(ctx, ts)), logger)
}

// NewGitHubWithClient wraps an existing go-github client.
func NewGitHubWithClient(client *github.Client, logger *slog.Logger) *GitHub {
	if logger == nil {
		logger = slog.Default()
	}

	return &GitHub{client: client, logger: logger}
}

// CreateRepo creates owner/name. owner may be an organization or the
// authenticated user.
func (g *GitHub) CreateRepo(ctx context.Context, owner, name, description string, private bool) (*Repo, error) {
	org, err := g.orgFor(ctx, owner)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("creating repository", slog.String("owner", owner), slog.String("name", name), slog.Bool("private", private))

	created, _, err := g.client.Repositories.Create(ctx, org, &github.Repository{
		Name:        github.Ptr(name),
		Description: github.Ptr(description),
		Private:     github.Ptr(private),
		AutoInit:    github.Ptr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s/%s: %w", owner, name, err)
	}

	return &Repo{
		FullName: created.GetFullName(),
		CloneURL: created.GetCloneURL(),
		HTMLURL:  created.GetHTMLURL(),
		Private:  created.GetPrivate(),
	}, nil
}

// DeleteRepo deletes owner/name.
func (g *GitHub) DeleteRepo(ctx context.Context, owner, name string) error {
	g.logger.Debug("deleting repository", slog.String("owner", owner), slog.String("name", name))

	resp, err := g.client.Repositories.Delete(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("repository %s/%s not found or not accessible", owner, name)
		}

		return fmt.Errorf("failed to delete repository %s/%s: %w", owner, name, err)
	}

	return nil
}

// orgFor returns the organization argument of the create call: empty when
// owner is the authenticated user.
func (g *GitHub) orgFor(ctx context.Context, owner string) (string, error) {
	if owner == "" {
		return "", nil
	}

	user, _, err := g.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}

	if user.GetLogin() == owner {
		return "", nil
	}

	return owner, nil
}

package auth

import (
	"os"
	"strings"

	ghauth "github.com/cli/go-gh/v2/pkg/auth"
)

// DefaultHost is the hosting service used when a repository names none.
const DefaultHost = "github.com"

const githubHelp = `Provide a token with one of:
  --token flag
  GITHUB_TOKEN or GH_TOKEN environment variable
  gh auth login`

// GitHubResolver resolves a token for host: the flag value, then
// GITHUB_TOKEN, then GH_TOKEN, then the gh CLI's stored credentials. The
// environment tokens are only offered to github.com and GH_HOST; other hosts
// get what the gh CLI stores for them.
func GitHubResolver(flagToken, host string) *Resolver {
	if host == "" {
		host = DefaultHost
	}

	r := NewResolver("GitHub").WithFlagValue(flagToken)
	if IsGitHubHost(host) {
		r.WithEnvs("GITHUB_TOKEN", "GH_TOKEN")
	}

	return r.WithProvider(ghCLIProvider(host)).WithHelpMessage(githubHelp)
}

// IsGitHubHost reports whether host is github.com or the GH_HOST override.
func IsGitHubHost(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == DefaultHost {
		return true
	}

	override := strings.ToLower(strings.TrimSpace(os.Getenv("GH_HOST")))

	return override != "" && host == override
}

// TokenForHost returns a token for host or an empty string.
func TokenForHost(host string) string {
	result, err := GitHubResolver("", host).Resolve()
	if err != nil {
		return ""
	}

	return result.Token
}

func ghCLIProvider(host string) TokenProvider {
	return func() (string, string, error) {
		token, _ := ghauth.TokenForHost(host)
		if token == "" {
			return "", "", nil
		}

		return token, "cli:gh", nil
	}
}

package giturl

import (
	"fmt"
	"strings"
)

const defaultHost = "github.com"

// Repository is a hosted repository addressed by owner and name.
type Repository struct {
	Owner string
	Name  string
	Host  string
}

// CloneURL returns the https clone URL, the form used as "db-repo".
func (r *Repository) CloneURL() string {
	return fmt.Sprintf("https://%s/%s/%s", r.Host, r.Owner, r.Name)
}

// FullName returns the "owner/repo" string
func (r *Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// ParseRepository accepts "owner/repo", "host/owner/repo" or any git URL.
func ParseRepository(arg string) (*Repository, error) {
	if strings.Contains(arg, ":") && !strings.Contains(arg, "\\") {
		return parseRepositoryFromURL(arg)
	}

	parts := strings.Split(strings.Trim(arg, "/"), "/")
	switch len(parts) {
	case 2:
		return &Repository{Owner: parts[0], Name: parts[1], Host: defaultHost}, nil
	case 3:
		return &Repository{
			Owner: parts[1],
			Name:  parts[2],
			Host:  strings.ToLower(strings.TrimPrefix(parts[0], "www.")),
		}, nil
	default:
		return nil, fmt.Errorf("invalid repository format %q: expected owner/repo or host/owner/repo", arg)
	}
}

func parseRepositoryFromURL(rawURL string) (*Repository, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository URL %q: expected owner/repo", rawURL)
	}

	host := u.Hostname()
	if host == "" {
		host = defaultHost
	}

	return &Repository{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
		Host:  strings.ToLower(strings.TrimPrefix(host, "www.")),
	}, nil
}

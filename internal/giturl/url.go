// Package giturl parses the repository identifiers stored in the registry
// and in package metadata ("db-repo" values).
package giturl

import (
	"net/url"
	"path"
	"strings"
)

func isSupportedProtocol(u string) bool {
	return strings.HasPrefix(u, "ssh:") ||
		strings.HasPrefix(u, "git+ssh:") ||
		strings.HasPrefix(u, "git:") ||
		strings.HasPrefix(u, "http:") ||
		strings.HasPrefix(u, "git+https:") ||
		strings.HasPrefix(u, "https:") ||
		strings.HasPrefix(u, "file:")
}

// Parse normalizes git remote urls, including scp-like syntax (git@github.com:owner/repo)
func Parse(rawURL string) (*url.URL, error) {
	if !isSupportedProtocol(rawURL) &&
		strings.ContainsRune(rawURL, ':') &&
		// not a Windows path
		!strings.ContainsRune(rawURL, '\\') {
		rawURL = "ssh://" + strings.Replace(rawURL, ":", "/", 1)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "git+https":
		u.Scheme = "https"
	case "git+ssh":
		u.Scheme = "ssh"
	}

	if u.Scheme != "ssh" {
		return u, nil
	}

	if strings.HasPrefix(u.Path, "//") {
		u.Path = strings.TrimPrefix(u.Path, "/")
	}

	u.Host = strings.TrimSuffix(u.Host, ":"+u.Port())

	return u, nil
}

// RepoName returns the last path segment of a repository identifier without
// a .git suffix: "https://github.com/user/repo.git" -> "repo".
func RepoName(raw string) string {
	p := raw
	if u, err := Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}

	name := path.Base(strings.TrimRight(p, "/"))
	if name == "." || name == "/" {
		return ""
	}

	return strings.TrimSuffix(name, ".git")
}

// SameRepository reports whether two identifiers point at the same
// repository, ignoring scheme, user info, case of the host, a trailing
// slash and a .git suffix.
func SameRepository(a, b string) bool {
	return canonical(a) == canonical(b)
}

func canonical(raw string) string {
	u, err := Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(strings.TrimRight(raw, "/"), ".git")
	}

	p := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")

	return strings.ToLower(strings.TrimPrefix(u.Hostname(), "www.")) + "/" + p
}

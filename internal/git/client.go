// Package git runs the git executable on behalf of miniature.
//
// Every operation miniature needs from version control is a method on
// [Client]; callers never assemble command lines themselves. Failures are
// reported as *GitError carrying git's exit code and output.
// Credential helper wiring follows github.com/cli/cli.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/inovacc/miniature/internal/giturl"
)

// Client wraps git operations for working copies
type Client struct {
	GitPath    string       // Path to git executable
	HelperPath string       // Path to miniature executable; enables the credential helper when set
	Logger     *slog.Logger // Receives one debug line per command
}

// NewClient creates a new git client
func NewClient() *Client {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		gitPath = "git"
	}

	return &Client{GitPath: gitPath}
}

// WithCredentialHelper makes remote operations authenticate through
// "miniature auth git-credential".
func (c *Client) WithCredentialHelper() *Client {
	if exe, err := os.Executable(); err == nil {
		c.HelperPath = exe
	}

	return c
}

// Command creates a git command running in dir
// Note: Do not set Stdout/Stderr if you plan to use CombinedOutput()
func (c *Client) Command(ctx context.Context, dir string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)
	cmd.Dir = dir

	return cmd
}

// CredentialPattern scopes the credential helper to one https origin. The
// zero value installs no helper.
type CredentialPattern struct {
	pattern string
}

// CredentialPatternFromHost creates a pattern for a specific host
func CredentialPatternFromHost(host string) CredentialPattern {
	if host == "" {
		return CredentialPattern{}
	}

	return CredentialPattern{pattern: "https://" + host}
}

// CredentialPatternFromGitURL derives a pattern from a remote URL. Only
// https remotes consult credential helpers; others get the zero pattern.
func CredentialPatternFromGitURL(gitURL string) CredentialPattern {
	u, err := giturl.Parse(gitURL)
	if err != nil || u.Scheme != "https" {
		return CredentialPattern{}
	}

	return CredentialPatternFromHost(u.Host)
}

// AuthenticatedCommand creates a git command with our credential helper
// configured for the pattern's host only. Without HelperPath or with a zero
// pattern it is Command.
func (c *Client) AuthenticatedCommand(ctx context.Context, dir string, pattern CredentialPattern, args ...string) *exec.Cmd {
	if c.HelperPath == "" || pattern.pattern == "" {
		return c.Command(ctx, dir, args...)
	}

	credHelper := fmt.Sprintf("!%q auth git-credential", c.HelperPath)
	preArgs := []string{
		"-c", fmt.Sprintf("credential.%s.helper=", pattern.pattern),
		"-c", fmt.Sprintf("credential.%s.helper=%s", pattern.pattern, credHelper),
	}

	return c.Command(ctx, dir, append(preArgs, args...)...)
}

func (c *Client) run(cmd *exec.Cmd, args []string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("git", slog.String("dir", cmd.Dir), slog.String("args", strings.Join(args, " ")))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		out := stderr.String()
		if s := strings.TrimSpace(stdout.String()); s != "" {
			out = strings.TrimSpace(out + "\n" + s)
		}

		return "", NewGitError(args, out, err)
	}

	return stdout.String(), nil
}

func (c *Client) git(ctx context.Context, dir string, args ...string) (string, error) {
	return c.run(c.Command(ctx, dir, args...), args)
}

// remote runs a command talking to the named remote, authenticating
// against that remote's host.
func (c *Client) remote(ctx context.Context, dir, remote string, args ...string) (string, error) {
	return c.run(c.AuthenticatedCommand(ctx, dir, c.remotePattern(ctx, dir, remote), args...), args)
}

func (c *Client) remotePattern(ctx context.Context, dir, remote string) CredentialPattern {
	if c.HelperPath == "" {
		return CredentialPattern{}
	}

	out, err := c.git(ctx, dir, "remote", "get-url", remote)
	if err != nil {
		return CredentialPattern{}
	}

	return CredentialPatternFromGitURL(strings.TrimSpace(out))
}

// ListTags returns every tag name in the working copy
func (c *Client) ListTags(ctx context.Context, dir string) ([]string, error) {
	out, err := c.git(ctx, dir, "tag", "--list")
	if err != nil {
		return nil, err
	}

	var tags []string

	for _, line := range strings.Split(out, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags, nil
}

// TagExists reports whether refs/tags/<name> exists locally
func (c *Client) TagExists(ctx context.Context, dir, name string) (bool, error) {
	_, err := c.git(ctx, dir, "show-ref", "--tags", "--verify", "--quiet", "refs/tags/"+name)
	if err == nil {
		return true, nil
	}

	// show-ref exits 1 when the ref is absent
	if GetExitCode(err) == 1 {
		return false, nil
	}

	return false, err
}

// Checkout checks out a tag, branch or commit
func (c *Client) Checkout(ctx context.Context, dir, ref string) error {
	_, err := c.git(ctx, dir, "checkout", "--quiet", ref)
	return err
}

// CreateAnnotatedTag creates an annotated tag at HEAD
func (c *Client) CreateAnnotatedTag(ctx context.Context, dir, name, message string) error {
	_, err := c.git(ctx, dir, "tag", "-a", name, "-m", message)
	return err
}

// DeleteTag deletes a local tag
func (c *Client) DeleteTag(ctx context.Context, dir, name string) error {
	_, err := c.git(ctx, dir, "tag", "-d", name)
	return err
}

// PushRef pushes a single ref to remote
func (c *Client) PushRef(ctx context.Context, dir, remote, ref string, force bool) error {
	args := []string{"push"}
	if force {
		args = append(args, "--force")
	}

	_, err := c.remote(ctx, dir, remote, append(args, remote, ref)...)

	return err
}

// PushRefDeletion deletes ref on remote (push <remote> :<ref>). Most git
// servers accept the deletion of a ref they do not have, so check with
// RemoteTagExists first when absence matters.
func (c *Client) PushRefDeletion(ctx context.Context, dir, remote, ref string) error {
	_, err := c.remote(ctx, dir, remote, "push", remote, ":"+ref)
	return err
}

// RemoteTagExists reports whether refs/tags/<name> exists on remote
func (c *Client) RemoteTagExists(ctx context.Context, dir, remote, name string) (bool, error) {
	out, err := c.remote(ctx, dir, remote, "ls-remote", "--tags", "--exit-code", remote, "refs/tags/"+name)
	if err == nil {
		return strings.TrimSpace(out) != "", nil
	}

	// --exit-code exits 2 when no ref matches
	if GetExitCode(err) == 2 {
		return false, nil
	}

	return false, err
}

// Clone clones url into dest
func (c *Client) Clone(ctx context.Context, url, dest string) error {
	args := []string{"clone", url, dest}
	_, err := c.run(c.AuthenticatedCommand(ctx, "", CredentialPatternFromGitURL(url), args...), args)

	return err
}

// CommitAll stages everything under paths and commits only those paths
func (c *Client) CommitAll(ctx context.Context, dir, message string, paths ...string) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if _, err := c.git(ctx, dir, append([]string{"add", "-A", "--"}, paths...)...); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}

	_, err := c.git(ctx, dir, append([]string{"commit", "-m", message, "--"}, paths...)...)

	return err
}

// PushBranch pushes branch to remote
func (c *Client) PushBranch(ctx context.Context, dir, remote, branch string) error {
	_, err := c.remote(ctx, dir, remote, "push", remote, branch)
	return err
}

// GitError represents a git command error
type GitError struct {
	ExitCode int
	Stderr   string
	Args     []string
	err      error
}

func (e *GitError) Error() string {
	cmd := "git"
	if len(e.Args) > 0 {
		cmd = "git " + e.Args[0]
	}

	if strings.TrimSpace(e.Stderr) == "" {
		return fmt.Sprintf("%s failed: %v", cmd, e.err)
	}

	return fmt.Sprintf("%s failed: %s", cmd, strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.err
}

// NewGitError creates a GitError from command output and error
func NewGitError(args []string, stderr string, err error) *GitError {
	exitCode := -1

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &GitError{
		ExitCode: exitCode,
		Stderr:   stderr,
		Args:     args,
		err:      err,
	}
}

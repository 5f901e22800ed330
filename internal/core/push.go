package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/miniature/internal/git"
)

// PushOptions configures the commit step of a publish.
type PushOptions struct {
	PackageDir    string
	MetaFile      string // default "pkg.json"
	CommitMessage string // default "Update from {basename(PackageDir)}"
	Push          bool
}

// PushOutcome reports the commit step. Committed is false when the working
// copy already matched the package.
type PushOutcome struct {
	Success       bool   `json:"success"`
	RepoPath      string `json:"repo_path,omitempty"`
	CommitMessage string `json:"commit_message,omitempty"`
	Committed     bool   `json:"committed"`
	Pushed        bool   `json:"pushed"`
	Message       string `json:"message"`
	Err           error  `json:"-"`
}

// Push copies the package directory into its repository's working copy under
// root-dir, commits it on the metadata branch and optionally pushes the
// branch. A package with a root-dir replaces that directory; a package
// without one is merged into the repository root.
func (e *Engine) Push(ctx context.Context, opts PushOptions) (*PushOutcome, error) {
	packageDir, err := filepath.Abs(opts.PackageDir)
	if err != nil {
		return nil, fmt.Errorf("resolve package dir: %w", err)
	}

	meta, err := ReadMetadata(packageDir, opts.MetaFile)
	if err != nil {
		return nil, err
	}

	local, err := e.locate(meta.Repo)
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(opts.CommitMessage)
	if message == "" {
		message = "Update from " + filepath.Base(packageDir)
	}

	out := &PushOutcome{RepoPath: local, CommitMessage: message}

	fail := func(step string, err error) (*PushOutcome, error) {
		out.Err = fmt.Errorf("%s: %w", step, err)
		out.Message = fmt.Sprintf("Failed to push package: %v", out.Err)

		return out, nil
	}

	dest := filepath.Join(local, filepath.FromSlash(meta.RootDir))
	if within(packageDir, dest) || within(dest, packageDir) {
		return fail("copy package", fmt.Errorf("package directory %s overlaps %s", packageDir, dest))
	}

	if err := e.vcs.Checkout(ctx, local, meta.Branch); err != nil {
		return fail("checkout "+meta.Branch, err)
	}

	if err := syncPackage(packageDir, dest, meta.RootDir == ""); err != nil {
		return fail("copy package", err)
	}

	scope := meta.RootDir
	if scope == "" {
		scope = "."
	}

	err = e.vcs.CommitAll(ctx, local, message, scope)

	switch {
	case err == nil:
		out.Committed = true
	case git.IsNothingToCommit(err):
		e.logger.Debug("nothing to commit", "repo", meta.Repo, "dir", scope)
	default:
		return fail("commit", err)
	}

	if opts.Push {
		if err := e.vcs.PushBranch(ctx, local, e.remote, meta.Branch); err != nil {
			return fail("push "+meta.Branch, err)
		}

		out.Pushed = true
	}

	out.Success = true
	out.Message = pushMessage(out, meta.Branch, e.remote)

	e.logger.Info("package pushed", "repo", meta.Repo, "branch", meta.Branch, "committed", out.Committed, "pushed", out.Pushed)

	return out, nil
}

func syncPackage(packageDir, dest string, merge bool) error {
	if same, err := samePath(packageDir, dest); err != nil {
		return err
	} else if same {
		return nil
	}

	if merge {
		return copyTree(packageDir, dest)
	}

	return replaceTree(packageDir, dest)
}

func samePath(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}

	bi, err := os.Stat(b)
	if os.IsNotExist(err) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return os.SameFile(ai, bi), nil
}

// within reports whether path lies strictly below dir.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}

	return rel != "." && filepath.IsLocal(rel)
}

func pushMessage(out *PushOutcome, branch, remote string) string {
	var msg string
	if out.Committed {
		msg = fmt.Sprintf("Committed '%s'", out.CommitMessage)
	} else {
		msg = "No changes to commit"
	}

	if out.Pushed {
		msg += fmt.Sprintf(" and pushed %s to %s", branch, remote)
	}

	return msg
}

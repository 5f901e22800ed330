package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/miniature/internal/encoding"
	"github.com/inovacc/miniature/internal/giturl"
	"github.com/inovacc/miniature/internal/model"
	"github.com/inovacc/miniature/internal/registry"
)

// SetupOutcome reports Setup.
type SetupOutcome struct {
	Success   bool   `json:"success"`
	Repo      string `json:"db_repo"`
	LocalPath string `json:"local_path"`
	Cloned    bool   `json:"cloned"`
	Message   string `json:"message"`
}

// Setup clones repoURL into localPath unless a working copy of the same
// repository is already there, then registers it.
func (e *Engine) Setup(ctx context.Context, repoURL, localPath string) (*SetupOutcome, error) {
	repoURL = strings.TrimSpace(repoURL)
	if repoURL == "" {
		return nil, &model.ValidationError{Field: "db-repo"}
	}

	if strings.TrimSpace(localPath) == "" {
		return nil, &model.ValidationError{Field: "local_path"}
	}

	expanded, err := encoding.ExpandHome(localPath)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", localPath, err)
	}

	out := &SetupOutcome{Repo: repoURL, LocalPath: abs}

	existing, err := existingWorkingCopy(abs)
	if err != nil {
		return nil, err
	}

	if existing {
		origin, err := registry.OriginURL(abs, e.remote)
		if err == nil && origin != "" && !giturl.SameRepository(origin, repoURL) {
			return nil, &PathCollisionError{Path: abs, ExpectedURL: repoURL, ActualURL: origin}
		}

		out.Message = fmt.Sprintf("Repository already exists at %s", abs)
	} else {
		if err := encoding.EnsureParentDir(abs); err != nil {
			return nil, err
		}

		e.logger.Info("cloning repository", "url", repoURL, "path", abs)

		if err := e.vcs.Clone(ctx, repoURL, abs); err != nil {
			return nil, fmt.Errorf("clone %s: %w", repoURL, err)
		}

		out.Cloned = true
		out.Message = fmt.Sprintf("Cloned %s into %s", repoURL, abs)
	}

	e.registry.Upsert(model.RegistryEntry{Repo: repoURL, LocalPath: abs})

	if err := e.registry.Save(); err != nil {
		return nil, fmt.Errorf("save registry: %w", err)
	}

	out.Success = true

	return out, nil
}

// existingWorkingCopy reports whether path already holds a working copy. A
// missing path or an empty directory is cloned into; anything else that is
// not a working copy is rejected.
func existingWorkingCopy(path string) (bool, error) {
	if !encoding.FileExists(path) {
		return false, nil
	}

	if !encoding.DirExists(path) {
		return false, &model.ValidationError{Field: "local_path", Reason: "exists and is not a directory"}
	}

	if encoding.FileExists(filepath.Join(path, ".git")) {
		return true, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if len(entries) > 0 {
		return false, &model.ValidationError{Field: "local_path", Reason: "exists and is not a git working copy"}
	}

	return false, nil
}

// Forget removes repo from the registry. The working copy is left alone.
func (e *Engine) Forget(repo string) (bool, error) {
	if !e.registry.Remove(repo) {
		return false, nil
	}

	if err := e.registry.Save(); err != nil {
		return true, fmt.Errorf("save registry: %w", err)
	}

	return true, nil
}

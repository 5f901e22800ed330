package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// OriginURL reads the URL configured for remote in the working copy's
// .git/config without invoking git.
func OriginURL(workingCopy, remote string) (string, error) {
	gitDir, err := gitDir(workingCopy)
	if err != nil {
		return "", err
	}

	cfg, err := ini.Load(filepath.Join(gitDir, "config"))
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}

	section := fmt.Sprintf("remote %q", remote)
	if !cfg.HasSection(section) {
		return "", fmt.Errorf("remote %s not configured in %s", remote, workingCopy)
	}

	return cfg.Section(section).Key("url").String(), nil
}

// gitDir resolves the git directory, following the "gitdir:" pointer file
// used by worktrees and submodules.
func gitDir(workingCopy string) (string, error) {
	dotGit := filepath.Join(workingCopy, ".git")

	info, err := os.Stat(dotGit)
	if err != nil {
		return "", fmt.Errorf("not a git repository: %s", workingCopy)
	}

	if info.IsDir() {
		return dotGit, nil
	}

	data, err := os.ReadFile(dotGit)
	if err != nil {
		return "", err
	}

	ref, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", fmt.Errorf("not a git repository: %s", workingCopy)
	}

	ref = strings.TrimSpace(ref)
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(workingCopy, ref)
	}

	return ref, nil
}

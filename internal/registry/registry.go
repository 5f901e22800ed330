// Package registry maps repository identifiers to local working copies.
//
// The registry is a JSON array of [model.RegistryEntry] values, unique by
// the "db-repo" key. Writes are upserts; the file keeps insertion order.
package registry

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/inovacc/miniature/internal/encoding"
	"github.com/inovacc/miniature/internal/giturl"
	"github.com/inovacc/miniature/internal/model"
)

// DefaultPath is the project-relative registry location.
const DefaultPath = ".miniature/gitdbs.json"

// ErrNotRegistered is returned when a repository has no registry entry.
var ErrNotRegistered = errors.New("repository not registered")

// NotRegisteredError carries the identifier and the registry consulted.
type NotRegisteredError struct {
	Repo string
	Path string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("local repository not found for %s. Check %s", e.Repo, e.Path)
}

func (e *NotRegisteredError) Unwrap() error { return ErrNotRegistered }

// StalePathError indicates a registry entry whose working copy is gone.
type StalePathError struct {
	Repo      string
	LocalPath string
}

func (e *StalePathError) Error() string {
	return fmt.Sprintf("local repository path does not exist: %s", e.LocalPath)
}

// Registry is an in-memory view of the registry file.
type Registry struct {
	path    string
	entries []model.RegistryEntry
}

// Open loads the registry at path. A missing file yields an empty registry.
func Open(path string) (*Registry, error) {
	if path == "" {
		path = DefaultPath
	}

	entries, err := encoding.LoadJSON[[]model.RegistryEntry](path)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}

	r := &Registry{path: path}
	if entries != nil {
		r.entries = *entries
	}

	return r, nil
}

// Path returns the file backing the registry.
func (r *Registry) Path() string {
	return r.path
}

// Entries returns a copy of all entries in insertion order.
func (r *Registry) Entries() []model.RegistryEntry {
	out := make([]model.RegistryEntry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Find returns the entry for repo.
func (r *Registry) Find(repo string) (model.RegistryEntry, bool) {
	if i := r.index(repo); i >= 0 {
		return r.entries[i], true
	}

	return model.RegistryEntry{}, false
}

// ResolveLocalPath returns the absolute working copy path for repo. A miss
// and a stale entry are reported with different errors.
func (r *Registry) ResolveLocalPath(repo string) (string, error) {
	entry, ok := r.Find(repo)
	if !ok || entry.LocalPath == "" {
		return "", &NotRegisteredError{Repo: repo, Path: r.path}
	}

	localPath, err := encoding.ExpandHome(entry.LocalPath)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(localPath); err != nil {
		return "", &StalePathError{Repo: repo, LocalPath: localPath}
	}

	return localPath, nil
}

// Upsert replaces the entry with the same Repo or appends a new one. Empty
// name and description fields keep their previous values on update.
func (r *Registry) Upsert(entry model.RegistryEntry) {
	if i := r.index(entry.Repo); i >= 0 {
		cur := &r.entries[i]
		cur.LocalPath = entry.LocalPath

		if entry.Name != "" {
			cur.Name = entry.Name
		}

		if entry.Description != "" {
			cur.Description = entry.Description
		}

		return
	}

	if entry.Name == "" {
		entry.Name = giturl.RepoName(entry.Repo)
	}

	if entry.Description == "" {
		entry.Description = "Local copy of " + entry.Repo
	}

	r.entries = append(r.entries, entry)
}

// Remove drops the entry for repo and reports whether one existed.
func (r *Registry) Remove(repo string) bool {
	i := r.index(repo)
	if i < 0 {
		return false
	}

	r.entries = append(r.entries[:i], r.entries[i+1:]...)

	return true
}

// Save writes the registry back to its file.
func (r *Registry) Save() error {
	entries := r.entries
	if entries == nil {
		entries = []model.RegistryEntry{}
	}

	return encoding.SaveJSON(r.path, entries)
}

func (r *Registry) index(repo string) int {
	repo = strings.TrimSpace(repo)
	for i := range r.entries {
		if r.entries[i].Repo == repo {
			return i
		}
	}

	return -1
}

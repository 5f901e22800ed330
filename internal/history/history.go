// Package history keeps the provenance of package loads: which version of
// which repository path ended up in which directory, and when.
//
// The backend is selected at build time:
//   - Default: BoltDB
//   - With -tags sqlite: SQLite
package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded load attempt. Resolved is empty when the load
// failed before a ref was checked out.
type Entry struct {
	ID        string    `json:"id"`
	Repo      string    `json:"db_repo"`
	Path      string    `json:"path"`
	Requested string    `json:"requested"`
	Resolved  string    `json:"resolved,omitempty"`
	TargetDir string    `json:"target_dir"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// Store persists entries.
type Store interface {
	Record(entry Entry) error
	// List returns up to limit entries, newest first. limit <= 0 returns all.
	List(limit int) ([]Entry, error)
	Close() error
}

// prepare fills the generated fields of entry.
func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	if entry.LoadedAt.IsZero() {
		entry.LoadedAt = time.Now().UTC()
	}
}

//go:build sqlite

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// FileName is the default history database file name.
const FileName = "history.db"

const schema = `CREATE TABLE IF NOT EXISTS loads (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	db_repo    TEXT NOT NULL,
	path       TEXT NOT NULL,
	requested  TEXT NOT NULL,
	resolved   TEXT NOT NULL DEFAULT '',
	target_dir TEXT NOT NULL,
	success    INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	loaded_at  TEXT NOT NULL
)`

// SQLite is the history store used with -tags sqlite.
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (Store, error) {
	return NewSQLite(path)
}

// NewSQLite opens a SQLite store at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Record(entry Entry) error {
	prepare(&entry)

	_, err := s.db.Exec(
		`INSERT INTO loads (id, db_repo, path, requested, resolved, target_dir, success, error, loaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Repo, entry.Path, entry.Requested, entry.Resolved,
		entry.TargetDir, entry.Success, entry.Error, entry.LoadedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording load: %w", err)
	}

	return nil
}

func (s *SQLite) List(limit int) ([]Entry, error) {
	query := `SELECT id, db_repo, path, requested, resolved, target_dir, success, error, loaded_at
		FROM loads ORDER BY seq DESC`

	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry

	for rows.Next() {
		var (
			entry    Entry
			loadedAt string
		)

		if err := rows.Scan(&entry.ID, &entry.Repo, &entry.Path, &entry.Requested, &entry.Resolved,
			&entry.TargetDir, &entry.Success, &entry.Error, &loadedAt); err != nil {
			return nil, err
		}

		if entry.LoadedAt, err = time.Parse(time.RFC3339Nano, loadedAt); err != nil {
			return nil, fmt.Errorf("parsing load time: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

//go:build !sqlite

package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// FileName is the default history database file name.
const FileName = "history.bolt"

const boltBucketLoads = "loads" // key: sequence -> Entry JSON

// Bolt is the default history store.
type Bolt struct {
	db *bbolt.DB
}

// Open opens or creates the history database at path.
func Open(path string) (Store, error) {
	return NewBolt(path)
}

// NewBolt opens a Bolt store at path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketLoads))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Record(entry Entry) error {
	prepare(&entry)

	data, err := json.Marshal(&entry)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		loads := tx.Bucket([]byte(boltBucketLoads))

		seq, err := loads.NextSequence()
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		return loads.Put(key, data)
	})
}

func (b *Bolt) List(limit int) ([]Entry, error) {
	var entries []Entry

	err := b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(boltBucketLoads)).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(entries) >= limit {
				break
			}

			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("decoding history entry: %w", err)
			}

			entries = append(entries, entry)
		}

		return nil
	})

	return entries, err
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

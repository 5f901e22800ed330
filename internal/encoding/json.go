// Package encoding reads and writes the JSON files miniature keeps on disk.
package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Indent is the indentation used for every file miniature writes.
const Indent = "    "

// LoadJSON reads a JSON file and unmarshals it into a new T.
// Returns nil, nil if the file does not exist.
func LoadJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return ParseJSON[T](data)
}

// ParseJSON unmarshals JSON data into the provided type.
func ParseJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(bytes.TrimSpace(data), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &result, nil
}

// SaveJSON marshals value with the stable indentation and replaces path
// atomically. Parent directories are created as needed.
func SaveJSON[T any](path string, value T) error {
	data, err := json.MarshalIndent(value, "", Indent)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	data = append(data, '\n')

	if err := EnsureParentDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

package core

import (
	"errors"
	"fmt"

	"github.com/inovacc/miniature/internal/security"
)

// ErrConfigMissing is matched by every *ConfigMissingError.
var ErrConfigMissing = errors.New("configuration missing")

var errNoPackages = errors.New("must contain a 'packages' object")

// ConfigMissingError indicates a metadata or manifest file that is absent
// or cannot be parsed
type ConfigMissingError struct {
	Kind string // "metadata" or "manifest"
	Path string
	Err  error
}

func (e *ConfigMissingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s file %s: %v", e.Kind, e.Path, e.Err)
	}

	return fmt.Sprintf("%s file not found: %s", e.Kind, e.Path)
}

func (e *ConfigMissingError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfigMissing}
	}

	return []error{ErrConfigMissing, e.Err}
}

// PathNotFoundError indicates the subpath is absent at the checked out ref
type PathNotFoundError struct {
	Path    string
	Version string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path '%s' not found in repository at version %s", e.Path, e.Version)
}

// TagExistsError indicates a tag is already present and force was not set
type TagExistsError struct {
	Name string
}

func (e *TagExistsError) Error() string {
	return fmt.Sprintf("tag '%s' already exists. Use force to overwrite", e.Name)
}

// SecretsFoundError blocks a publish whose package contains secrets
type SecretsFoundError struct {
	Dir    string
	Result *security.ScanResult
}

func (e *SecretsFoundError) Error() string {
	return fmt.Sprintf("found %d potential secret(s) in %s", len(e.Result.Findings), e.Dir)
}

// PathCollisionError indicates the path exists with different content
type PathCollisionError struct {
	Path        string
	ExpectedURL string
	ActualURL   string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("path collision: %s contains %s, expected %s",
		e.Path, e.ActualURL, e.ExpectedURL)
}

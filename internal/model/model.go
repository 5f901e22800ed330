package model

import (
	"fmt"
	"strings"
)

// DefaultBranch is used when metadata or a manifest entry names no branch.
const DefaultBranch = "main"

// RegistryEntry is one element of the registry file.
type RegistryEntry struct {
	// Name is a display name, usually the repository name
	Name string `json:"name"`

	// Description is free text shown in listings
	Description string `json:"description"`

	// Repo is the repository identifier and the registry key
	Repo string `json:"db-repo"`

	// LocalPath is the working copy location, possibly starting with ~
	LocalPath string `json:"local_path"`
}

// ValidationError reports a required field missing from a record, or a
// field whose value is unusable when Reason is set.
type ValidationError struct {
	Field  string
	Source string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid '%s': %s", e.Field, e.Reason)
	}

	if e.Source == "" {
		return fmt.Sprintf("missing required field '%s'", e.Field)
	}

	return fmt.Sprintf("no '%s' found in %s", e.Field, e.Source)
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

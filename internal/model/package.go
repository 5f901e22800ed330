package model

import "path"

// PackageMetadata is the content of a package metadata file (pkg.json).
type PackageMetadata struct {
	Version     string `json:"version"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Branch      string `json:"branch,omitempty"`
	Repo        string `json:"db-repo,omitempty"`
	RootDir     string `json:"root-dir,omitempty"`
}

// ApplyDefaults fills optional fields with their documented defaults.
func (m *PackageMetadata) ApplyDefaults() {
	m.Version = trimmed(m.Version)
	m.Repo = trimmed(m.Repo)
	m.RootDir = path.Clean("/" + trimmed(m.RootDir))[1:]

	if m.Branch == "" {
		m.Branch = DefaultBranch
	}
}

// Validate checks the fields publishing depends on. source names the file in
// the returned error.
func (m *PackageMetadata) Validate(source string) error {
	if m.Version == "" {
		return &ValidationError{Field: "version", Source: source}
	}

	if m.Repo == "" {
		return &ValidationError{Field: "db-repo", Source: source}
	}

	return nil
}

// TagName derives the tag a published version is addressed by.
func (m *PackageMetadata) TagName() string {
	if m.RootDir == "" {
		return m.Version
	}

	return m.RootDir + "/" + m.Version
}

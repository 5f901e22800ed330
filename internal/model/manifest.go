package model

import "sort"

// ManifestEntry describes one package of a manifest.
type ManifestEntry struct {
	Repo      string `json:"db-repo"`
	RootDir   string `json:"root-dir"`
	Version   string `json:"version,omitempty"`
	Branch    string `json:"branch,omitempty"`
	TargetDir string `json:"target-dir,omitempty"`
}

// Manifest is the batch load file.
type Manifest struct {
	Packages map[string]ManifestEntry `json:"packages"`
}

// ApplyDefaults sets the default branch on every entry.
func (m *Manifest) ApplyDefaults() {
	for name, entry := range m.Packages {
		entry.Repo = trimmed(entry.Repo)
		if entry.Branch == "" {
			entry.Branch = DefaultBranch
		}

		m.Packages[name] = entry
	}
}

// Names returns the package names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Packages))
	for name := range m.Packages {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Target returns where an entry is copied to: target-dir, or root-dir when
// no target is given.
func (e ManifestEntry) Target() string {
	if e.TargetDir != "" {
		return e.TargetDir
	}

	return e.RootDir
}

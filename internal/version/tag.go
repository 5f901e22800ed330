package version

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Tag is a tag name with its parsed parts.
type Tag struct {
	Name    string
	Prefix  string
	Version *semver.Version
}

// ParseTag splits name into prefix and version. At most one leading "v" is
// stripped from the version. Version is nil for raw tags.
func ParseTag(name string) Tag {
	t := Tag{Name: name}

	rest := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		t.Prefix = name[:i]
		rest = name[i+1:]
	}

	rest = strings.TrimPrefix(rest, "v")
	if rest == "" || !isDigit(rest[0]) {
		return t
	}

	if v, err := semver.NewVersion(rest); err == nil {
		t.Version = v
	}

	return t
}

// Raw reports whether the tag has no parseable version.
func (t Tag) Raw() bool {
	return t.Version == nil
}

// compare orders by version precedence, then by name.
func compare(a, b Tag) int {
	if c := a.Version.Compare(b.Version); c != 0 {
		return c
	}

	return strings.Compare(a.Name, b.Name)
}

// Sort parses names and returns the versioned tags in ascending order
// together with the raw tags in their original order.
func Sort(names []string) (versioned []Tag, raw []string) {
	for _, name := range names {
		t := ParseTag(name)
		if t.Raw() {
			raw = append(raw, name)
			continue
		}

		versioned = append(versioned, t)
	}

	sort.SliceStable(versioned, func(i, j int) bool {
		return compare(versioned[i], versioned[j]) < 0
	})

	return versioned, raw
}

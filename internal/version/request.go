package version

import "strings"

// Latest is the request selecting the highest parsed version.
const Latest = "latest"

// Kind classifies a version request.
type Kind int

const (
	KindBranch Kind = iota // no version given, check out a branch
	KindExact              // namespaced tag name, used verbatim
	KindLatest             // highest parsed version
	KindRange              // comparator expression
)

func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindExact:
		return "exact"
	case KindLatest:
		return "latest"
	case KindRange:
		return "range"
	}
	return "unknown"
}

// Request is a parsed version request.
type Request struct {
	Kind  Kind
	Value string

	// Scope, when set, restricts latest and range resolution to tags whose
	// prefix equals it.
	Scope string
}

// ParseRequest classifies version; an empty version selects branch.
func ParseRequest(version, branch string) Request {
	version = strings.TrimSpace(version)

	switch {
	case version == "":
		return Request{Kind: KindBranch, Value: branch}
	case version == Latest:
		return Request{Kind: KindLatest, Value: version}
	case strings.Contains(version, "/"):
		return Request{Kind: KindExact, Value: version}
	default:
		return Request{Kind: KindRange, Value: version}
	}
}

// String returns the request as the user wrote it.
func (r Request) String() string {
	return r.Value
}

// WithScope returns a copy of r limited to tags under prefix.
func (r Request) WithScope(prefix string) Request {
	r.Scope = strings.Trim(prefix, "/")
	return r
}

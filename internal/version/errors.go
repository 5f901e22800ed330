package version

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTags is returned when the repository has no tags at all.
	ErrNoTags = errors.New("no tags found in repository")

	// ErrNoMatch is returned when tags exist but none satisfies the request.
	ErrNoMatch = errors.New("no matching tag")

	// ErrInvalidRange is wrapped by RangeError.
	ErrInvalidRange = errors.New("invalid version range")
)

// NoMatchError names the request that matched nothing.
type NoMatchError struct {
	Request string
}

func (e *NoMatchError) Error() string {
	if e.Request == Latest {
		return "no tag with a parseable version found"
	}

	return fmt.Sprintf("no tag found matching version %s", e.Request)
}

func (e *NoMatchError) Unwrap() error { return ErrNoMatch }

// RangeError reports a malformed range specifier.
type RangeError struct {
	Range string
	Err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid version range %q: %v", e.Range, e.Err)
}

func (e *RangeError) Unwrap() []error { return []error{ErrInvalidRange, e.Err} }

var (
	errEmptyRange      = errors.New("empty range")
	errEmptyComparator = errors.New("empty comparator")
	errBadOperand      = errors.New("not a version comparison")
)

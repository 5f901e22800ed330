package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Resolve picks the single tag tags offers for req.
//
// Exact requests are returned verbatim without consulting tags. Branch
// requests return the branch name. Latest and range requests fail with
// ErrNoTags when tags is empty, with a *NoMatchError when nothing qualifies,
// and range requests fail with a *RangeError when the range is malformed.
func Resolve(tags []string, req Request) (string, error) {
	switch req.Kind {
	case KindBranch, KindExact:
		return req.Value, nil
	case KindLatest:
		if len(tags) == 0 {
			return "", ErrNoTags
		}

		return pick(tags, req, nil)
	}

	for _, name := range tags {
		if name == req.Value {
			return name, nil
		}
	}

	constraint, err := ParseRange(req.Value)
	if err != nil {
		return "", err
	}

	if len(tags) == 0 {
		return "", ErrNoTags
	}

	return pick(tags, req, constraint)
}

// ParseRange parses a comparator set such as ">=0.1.0,<0.2.0". Comparators
// are ==, =, !=, <, <=, >, >= and commas combine them with logical AND; an
// operand without an operator means ==. Operands compare by plain semver
// precedence, so a partial version is completed with zeros ("<=1.2" is
// "<=1.2.0"). Wildcards, "~", "^" and "||" are rejected.
func ParseRange(expr string) (*semver.Constraints, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, &RangeError{Range: expr, Err: errEmptyRange}
	}

	parts := strings.Split(expr, ",")
	normalized := make([]string, 0, len(parts))

	for _, part := range parts {
		comparator, err := normalizeComparator(part)
		if err != nil {
			return nil, &RangeError{Range: expr, Err: err}
		}

		normalized = append(normalized, comparator)
	}

	c, err := semver.NewConstraint(strings.Join(normalized, ", "))
	if err != nil {
		return nil, &RangeError{Range: expr, Err: err}
	}

	return c, nil
}

// operators is ordered so two-character operators match first.
var operators = []string{"==", "!=", "<=", ">=", "<", ">", "="}

func normalizeComparator(raw string) (string, error) {
	comparator := strings.TrimSpace(raw)
	if comparator == "" {
		return "", errEmptyComparator
	}

	op := "="

	for _, candidate := range operators {
		if rest, ok := strings.CutPrefix(comparator, candidate); ok {
			op = candidate
			comparator = rest

			break
		}
	}

	if op == "==" {
		op = "="
	}

	operand := strings.TrimPrefix(strings.TrimSpace(comparator), "v")
	if operand == "" || !isDigit(operand[0]) {
		return "", fmt.Errorf("%w %q", errBadOperand, strings.TrimSpace(raw))
	}

	v, err := semver.NewVersion(operand)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", errBadOperand, strings.TrimSpace(raw), err)
	}

	return op + v.String(), nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func pick(tags []string, req Request, constraint *semver.Constraints) (string, error) {
	var best *Tag

	for _, name := range tags {
		t := ParseTag(name)
		if t.Raw() {
			continue
		}

		if req.Scope != "" && t.Prefix != req.Scope {
			continue
		}

		if constraint != nil && !constraint.Check(t.Version) {
			continue
		}

		if best == nil || compare(t, *best) > 0 {
			best = &t
		}
	}

	if best == nil {
		return "", &NoMatchError{Request: req.Value}
	}

	return best.Name, nil
}

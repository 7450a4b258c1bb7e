// Package semrange implements contiguous semantic version ranges with
// intersection semantics. A range is authored as a comma-separated list
// of comparators (">=1.0,<3.0") the way package manifests declare
// dependency bounds. Intersection keeps the narrowest bounds, which is
// the merge policy used when several extras groups reference the same
// package.
package semrange

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// bound is one end of a range. The authored text is kept so that
// rendering a merged range reproduces the surviving source bound
// verbatim, keeping plan output stable across runs.
type bound struct {
	version   *semver.Version
	original  string
	inclusive bool
}

// Range is a contiguous interval of semantic versions. The zero value
// matches any version.
type Range struct {
	lower *bound
	upper *bound
}

// Parse parses a comma-separated comparator list into a Range.
// Supported comparators: ">=", ">", "<=", "<", "==", "=" and a bare
// version, which pins exactly. Empty input and "*" match any version.
func Parse(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return Range{}, nil
	}

	var r Range
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Range{}, fmt.Errorf("empty comparator in range %q", s)
		}

		op, rest := splitComparator(part)
		ver, err := semver.NewVersion(rest)
		if err != nil {
			return Range{}, fmt.Errorf("invalid version %q in range %q: %w", rest, s, err)
		}

		b := &bound{version: ver, original: rest}
		switch op {
		case ">=":
			b.inclusive = true
			r.lower = tighterLower(r.lower, b)
		case ">":
			r.lower = tighterLower(r.lower, b)
		case "<=":
			b.inclusive = true
			r.upper = tighterUpper(r.upper, b)
		case "<":
			r.upper = tighterUpper(r.upper, b)
		case "==", "=", "":
			b.inclusive = true
			r.lower = tighterLower(r.lower, b)
			r.upper = tighterUpper(r.upper, b)
		default:
			return Range{}, fmt.Errorf("unknown comparator %q in range %q", op, s)
		}
	}

	return r, nil
}

// MustParse parses a range and panics on error. For tests and
// compile-time constants.
func MustParse(s string) Range {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

func splitComparator(part string) (op, rest string) {
	for _, candidate := range []string{">=", "<=", "==", ">", "<", "="} {
		if strings.HasPrefix(part, candidate) {
			return candidate, strings.TrimSpace(part[len(candidate):])
		}
	}
	return "", part
}

// Any reports whether the range matches every version.
func (r Range) Any() bool {
	return r.lower == nil && r.upper == nil
}

// IsEmpty reports whether no version can satisfy the range.
func (r Range) IsEmpty() bool {
	if r.lower == nil || r.upper == nil {
		return false
	}
	cmp := r.lower.version.Compare(r.upper.version)
	if cmp > 0 {
		return true
	}
	if cmp == 0 {
		return !(r.lower.inclusive && r.upper.inclusive)
	}
	return false
}

// Contains reports whether the version satisfies the range.
func (r Range) Contains(v *semver.Version) bool {
	if r.lower != nil {
		cmp := v.Compare(r.lower.version)
		if cmp < 0 || (cmp == 0 && !r.lower.inclusive) {
			return false
		}
	}
	if r.upper != nil {
		cmp := v.Compare(r.upper.version)
		if cmp > 0 || (cmp == 0 && !r.upper.inclusive) {
			return false
		}
	}
	return true
}

// Intersect returns the narrowest range satisfying both r and o.
// The result may be empty; callers decide whether that is fatal.
func (r Range) Intersect(o Range) Range {
	return Range{
		lower: tighterLower(r.lower, o.lower),
		upper: tighterUpper(r.upper, o.upper),
	}
}

// Equal reports whether two ranges have identical bounds.
func (r Range) Equal(o Range) bool {
	return boundsEqual(r.lower, o.lower) && boundsEqual(r.upper, o.upper)
}

func boundsEqual(a, b *bound) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.inclusive == b.inclusive && a.version.Equal(b.version)
}

// String renders the range canonically, reproducing the authored
// version text of whichever bounds survived intersection.
func (r Range) String() string {
	if r.Any() {
		return "*"
	}

	// Exact pin
	if r.lower != nil && r.upper != nil &&
		r.lower.inclusive && r.upper.inclusive &&
		r.lower.version.Equal(r.upper.version) {
		return "==" + r.lower.original
	}

	var parts []string
	if r.lower != nil {
		op := ">"
		if r.lower.inclusive {
			op = ">="
		}
		parts = append(parts, op+r.lower.original)
	}
	if r.upper != nil {
		op := "<"
		if r.upper.inclusive {
			op = "<="
		}
		parts = append(parts, op+r.upper.original)
	}
	return strings.Join(parts, ",")
}

// tighterLower picks the more restrictive lower bound. A higher version
// wins; at equal versions the exclusive bound wins.
func tighterLower(a, b *bound) *bound {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	switch cmp := b.version.Compare(a.version); {
	case cmp > 0:
		return b
	case cmp < 0:
		return a
	default:
		if !b.inclusive {
			return b
		}
		return a
	}
}

// tighterUpper picks the more restrictive upper bound. A lower version
// wins; at equal versions the exclusive bound wins.
func tighterUpper(a, b *bound) *bound {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	switch cmp := b.version.Compare(a.version); {
	case cmp < 0:
		return b
	case cmp > 0:
		return a
	default:
		if !b.inclusive {
			return b
		}
		return a
	}
}

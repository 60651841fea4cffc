package versrange

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Comparator is the operator of a single vers constraint
type Comparator string

// Supported comparators. An omitted comparator means Equal.
const (
	Equal          Comparator = "="
	NotEqual       Comparator = "!="
	LessThan       Comparator = "<"
	LessOrEqual    Comparator = "<="
	GreaterThan    Comparator = ">"
	GreaterOrEqual Comparator = ">="
)

// comparators are ordered so that two character operators are matched first
var comparators = []Comparator{GreaterOrEqual, LessOrEqual, NotEqual, GreaterThan, LessThan, Equal}

const (
	versPrefix = "vers:"
	// NotFixed is the literal a model emits when no fixed version exists
	NotFixed = "Not Fixed"
)

// Constraint is one comparator/version pair of a range
type Constraint struct {
	Comparator Comparator
	Version    Version
}

func (c Constraint) String() string {
	if c.Comparator == Equal {
		return c.Version.String()
	}
	return string(c.Comparator) + c.Version.String()
}

func (c Constraint) satisfiedBy(v Version) bool {
	cmp := v.Compare(c.Version)
	switch c.Comparator {
	case Equal:
		return cmp == 0
	case NotEqual:
		return cmp != 0
	case LessThan:
		return cmp < 0
	case LessOrEqual:
		return cmp <= 0
	case GreaterThan:
		return cmp > 0
	case GreaterOrEqual:
		return cmp >= 0
	}
	return false
}

func (c Constraint) isLower() bool {
	return c.Comparator == GreaterThan || c.Comparator == GreaterOrEqual
}

func (c Constraint) isUpper() bool {
	return c.Comparator == LessThan || c.Comparator == LessOrEqual
}

// VersionRange is a resolved range under one versioning scheme
type VersionRange struct {
	Scheme      string
	Constraints []Constraint
	// All is set for the "*" range matching every version
	All bool
	// NotFixed marks the "Not Fixed" literal; such a range contains nothing
	NotFixed bool
}

// String renders the range in vers syntax
func (r VersionRange) String() string {
	var body string
	switch {
	case r.NotFixed:
		body = NotFixed
	case r.All:
		body = "*"
	default:
		parts := make([]string, len(r.Constraints))
		for i, c := range r.Constraints {
			parts[i] = c.String()
		}
		body = strings.Join(parts, "|")
	}
	return versPrefix + r.Scheme + "/" + body
}

// MarshalJSON encodes the range as its vers string
func (r VersionRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// Contains reports whether version lies within the range.
func (r VersionRange) Contains(version string) (bool, error) {
	if r.NotFixed {
		return false, nil
	}
	if r.All {
		return true, nil
	}

	scheme, ok := Lookup(r.Scheme)
	if !ok {
		return false, &UnsupportedEcosystemError{Ecosystem: r.Scheme}
	}
	v, err := scheme.ParseVersion(strings.TrimSpace(version))
	if err != nil {
		return false, fmt.Errorf("failed to parse %s version %q: %w", r.Scheme, version, err)
	}

	bounds := make([]Constraint, 0, len(r.Constraints))
	for _, c := range r.Constraints {
		switch c.Comparator {
		case Equal:
			if c.satisfiedBy(v) {
				return true, nil
			}
		case NotEqual:
			if !c.satisfiedBy(v) {
				return false, nil
			}
		default:
			bounds = append(bounds, c)
		}
	}

	switch len(bounds) {
	case 0:
		return false, nil
	case 1:
		return bounds[0].satisfiedBy(v), nil
	}

	last := len(bounds) - 2
	for i := 0; i <= last; i++ {
		cur, next := bounds[i], bounds[i+1]
		if i == 0 && cur.isUpper() && cur.satisfiedBy(v) {
			return true, nil
		}
		if i == last && next.isLower() && next.satisfiedBy(v) {
			return true, nil
		}
		if cur.isLower() && next.isUpper() && cur.satisfiedBy(v) && next.satisfiedBy(v) {
			return true, nil
		}
	}
	return false, nil
}

// Parse parses a full vers string such as "vers:pypi/>=1.2.3|<2.0.0".
//
// Besides the vers comparators it accepts "V1 - V2" as shorthand for
// ">=V1|<=V2". The "Not Fixed" literal is malformed here; use ParseFixed for
// fixed version lists.
func Parse(raw string) (VersionRange, error) {
	return parse(raw, false)
}

// ParseFixed is Parse for a fixed version, where "Not Fixed" is also allowed
func ParseFixed(raw string) (VersionRange, error) {
	return parse(raw, true)
}

func parse(raw string, allowNotFixed bool) (VersionRange, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(strings.ToLower(s), versPrefix) {
		return VersionRange{}, malformed(raw, "missing %q prefix", versPrefix)
	}
	s = s[len(versPrefix):]

	idx := strings.Index(s, "/")
	if idx <= 0 {
		return VersionRange{}, malformed(raw, "missing versioning scheme")
	}
	schemeName := strings.TrimSpace(s[:idx])
	scheme, ok := Lookup(schemeName)
	if !ok {
		return VersionRange{}, &UnsupportedEcosystemError{Ecosystem: schemeName}
	}

	r := VersionRange{Scheme: scheme.Name}
	body := strings.TrimSpace(s[idx+1:])

	if strings.EqualFold(body, NotFixed) {
		if !allowNotFixed {
			return VersionRange{}, malformed(raw, "%q is only valid for fixed versions", NotFixed)
		}
		r.NotFixed = true
		return r, nil
	}
	if body == "*" {
		r.All = true
		return r, nil
	}

	for _, part := range expandHyphenRanges(strings.Split(body, "|")) {
		c, err := parseConstraint(scheme, part)
		if err != nil {
			return VersionRange{}, &MalformedRangeError{Range: raw, Err: err}
		}
		r.Constraints = append(r.Constraints, c)
	}

	sort.SliceStable(r.Constraints, func(i, j int) bool {
		return r.Constraints[i].Version.Compare(r.Constraints[j].Version) < 0
	})
	return r, nil
}

// expandHyphenRanges rewrites "V1 - V2" into ">=V1" and "<=V2".
// The surrounding spaces keep prerelease versions such as 1.0.0-beta intact.
func expandHyphenRanges(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		bounds := strings.Split(part, " - ")
		if len(bounds) == 2 {
			out = append(out,
				string(GreaterOrEqual)+strings.TrimSpace(bounds[0]),
				string(LessOrEqual)+strings.TrimSpace(bounds[1]))
			continue
		}
		out = append(out, part)
	}
	return out
}

func parseConstraint(scheme Scheme, raw string) (Constraint, error) {
	s := strings.Join(strings.Fields(raw), "")
	if s == "" {
		return Constraint{}, fmt.Errorf("empty constraint")
	}
	if s == "*" {
		return Constraint{}, fmt.Errorf("%q cannot be combined with other constraints", "*")
	}

	comparator := Equal
	for _, op := range comparators {
		if strings.HasPrefix(s, string(op)) {
			comparator = op
			s = s[len(op):]
			break
		}
	}
	if comparator == Equal {
		// tolerate PEP 440 style "=="
		s = strings.TrimPrefix(s, string(Equal))
	}

	decoded, err := url.PathUnescape(s)
	if err != nil {
		return Constraint{}, fmt.Errorf("invalid escape in version %q: %w", s, err)
	}
	if decoded == "" {
		return Constraint{}, fmt.Errorf("missing version after %q", comparator)
	}

	v, err := scheme.ParseVersion(decoded)
	if err != nil {
		return Constraint{}, fmt.Errorf("invalid %s version %q: %w", scheme.Name, decoded, err)
	}
	return Constraint{Comparator: comparator, Version: v}, nil
}

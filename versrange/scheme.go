// Package versrange resolves vers-style version range strings into
// ecosystem specific ranges that can be evaluated against versions.
package versrange

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	npm "github.com/aquasecurity/go-npm-version/pkg"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/aquasecurity/go-version/pkg/version"
)

// Version is a parsed version under a single scheme
type Version interface {
	// Compare returns -1, 0 or 1. Both versions must come from the same scheme.
	Compare(other Version) int
	String() string
}

// Scheme knows how to parse versions of one versioning scheme
type Scheme struct {
	Name  string
	parse func(string) (Version, error)
}

// ParseVersion parses a raw version string under the scheme
func (s Scheme) ParseVersion(raw string) (Version, error) {
	return s.parse(raw)
}

type orderedVersion[T any] interface {
	LessThan(T) bool
	GreaterThan(T) bool
}

type schemeVersion[T orderedVersion[T]] struct {
	v   T
	raw string
}

func (s schemeVersion[T]) Compare(other Version) int {
	o, ok := other.(schemeVersion[T])
	if !ok {
		// Versions from different schemes never appear in one range.
		return strings.Compare(s.raw, other.String())
	}
	switch {
	case s.v.LessThan(o.v):
		return -1
	case s.v.GreaterThan(o.v):
		return 1
	}
	return 0
}

func (s schemeVersion[T]) String() string {
	return s.raw
}

func newScheme[T orderedVersion[T]](name string, parse func(string) (T, error)) Scheme {
	return Scheme{
		Name: name,
		parse: func(raw string) (Version, error) {
			v, err := parse(raw)
			if err != nil {
				return nil, err
			}
			return schemeVersion[T]{v: v, raw: raw}, nil
		},
	}
}

var registry = map[string]Scheme{}

// aliases maps OSV ecosystem names onto registered scheme names
var aliases = map[string]string{
	"go":        "golang",
	"crates.io": "cargo",
}

func register(s Scheme) {
	registry[s.Name] = s
}

func init() {
	register(newScheme("pypi", pep440.Parse))
	register(newScheme("npm", npm.NewVersion))

	for _, name := range []string{"semver", "golang", "cargo", "hex", "pub"} {
		register(newScheme(name, semver.NewVersion))
	}

	for _, name := range []string{"generic", "maven", "nuget"} {
		register(newScheme(name, version.Parse))
	}
}

// Lookup returns the scheme registered under name.
// Names are matched case-insensitively.
// OSV ecosystem names such as "PyPI", "Go" or "crates.io" are accepted too.
func Lookup(name string) (Scheme, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	s, ok := registry[key]
	return s, ok
}

// Schemes returns the sorted names of all registered schemes
func Schemes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

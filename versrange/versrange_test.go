package versrange

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmpty(t *testing.T) {
	for _, eco := range Schemes() {
		ranges, err := Resolve(eco, []string{})
		require.NoError(t, err, eco)
		assert.NotNil(t, ranges, eco)
		assert.Empty(t, ranges, eco)
	}
}

func TestResolveKeepsOrder(t *testing.T) {
	ranges, err := Resolve("pypi", []string{">=1.2.3", "<2.0.0"})
	require.NoError(t, err)
	require.Len(t, ranges, 2)

	first, err := Parse("vers:pypi/>=1.2.3")
	require.NoError(t, err)
	second, err := Parse("vers:pypi/<2.0.0")
	require.NoError(t, err)

	assert.Equal(t, first, ranges[0])
	assert.Equal(t, second, ranges[1])
	assert.Equal(t, "vers:pypi/>=1.2.3", ranges[0].String())
	assert.Equal(t, "vers:pypi/<2.0.0", ranges[1].String())
}

func TestResolveUnsupportedEcosystem(t *testing.T) {
	for _, input := range [][]string{{">=1.0.0"}, {"not-a-version"}, {}} {
		ranges, err := Resolve("cobol-packages", input)
		assert.Nil(t, ranges)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedEcosystem))

		var target *UnsupportedEcosystemError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "cobol-packages", target.Ecosystem)
	}
}

func TestResolveMalformed(t *testing.T) {
	ranges, err := Resolve("pypi", []string{">=1.0.0", "not-a-version"})
	assert.Nil(t, ranges)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRange))
	assert.False(t, errors.Is(err, ErrUnsupportedEcosystem))

	var target *MalformedRangeError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "vers:pypi/not-a-version", target.Range)
}

func TestResolveMalformedInputs(t *testing.T) {
	tests := []struct {
		eco   string
		input string
	}{
		{"pypi", ""},
		{"pypi", ">="},
		{"npm", "banana"},
		{"semver", "<one.two"},
		{"pypi", "1.0|*"},
		{"pypi", "%zz"},
	}
	for _, tt := range tests {
		_, err := Resolve(tt.eco, []string{tt.input})
		assert.ErrorIs(t, err, ErrMalformedRange, "%s %q", tt.eco, tt.input)
	}
}

func TestResolveAliases(t *testing.T) {
	for _, eco := range []string{"PyPI", " pypi ", "Go", "crates.io"} {
		assert.True(t, Supported(eco), eco)
	}

	ranges, err := Resolve("Go", []string{"<v1.4.0"})
	require.NoError(t, err)
	assert.Equal(t, "vers:golang/<v1.4.0", ranges[0].String())
}

func TestParseForms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vers:pypi/2.0.0", "vers:pypi/2.0.0"},
		{"vers:pypi/==2.0.0", "vers:pypi/2.0.0"},
		{"vers:pypi/ >= 1.2.3 ", "vers:pypi/>=1.2.3"},
		{"vers:npm/<2.0.0|>=1.0.0", "vers:npm/>=1.0.0|<2.0.0"},
		{"vers:npm/1.0.0 - 1.4.2", "vers:npm/>=1.0.0|<=1.4.2"},
		{"vers:npm/1.0.0-beta.1", "vers:npm/1.0.0-beta.1"},
		{"vers:maven/!=1.2.3.4", "vers:maven/!=1.2.3.4"},
		{"vers:pypi/*", "vers:pypi/*"},
	}
	for _, tt := range tests {
		r, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, r.String(), tt.in)
	}
}

func TestParseRejects(t *testing.T) {
	_, err := Parse("pypi/>=1.0")
	assert.ErrorIs(t, err, ErrMalformedRange)

	_, err = Parse("vers:/>=1.0")
	assert.ErrorIs(t, err, ErrMalformedRange)

	_, err = Parse("vers:unknown/>=1.0")
	assert.ErrorIs(t, err, ErrUnsupportedEcosystem)
}

func TestNotFixedOnlyInFixedVersions(t *testing.T) {
	_, err := Parse("vers:pypi/Not Fixed")
	assert.ErrorIs(t, err, ErrMalformedRange)

	ranges, err := Resolve("pypi", []string{">=1.0", NotFixed})
	assert.ErrorIs(t, err, ErrMalformedRange)
	assert.Nil(t, ranges)

	r, err := ParseFixed("vers:pypi/not fixed")
	require.NoError(t, err)
	assert.Equal(t, "vers:pypi/Not Fixed", r.String())
}

func TestNotFixed(t *testing.T) {
	ranges, err := ResolveFixed("pypi", []string{NotFixed})
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.True(t, ranges[0].NotFixed)
	assert.Empty(t, ranges[0].Constraints)

	in, err := ranges[0].Contains("1.0.0")
	require.NoError(t, err)
	assert.False(t, in)
}

func TestContains(t *testing.T) {
	tests := []struct {
		vers    string
		version string
		want    bool
	}{
		{"vers:pypi/>=1.2.3|<2.0.0", "1.2.3", true},
		{"vers:pypi/>=1.2.3|<2.0.0", "1.9.9", true},
		{"vers:pypi/>=1.2.3|<2.0.0", "2.0.0", false},
		{"vers:pypi/>=1.2.3|<2.0.0", "1.0", false},
		{"vers:pypi/<2.0.0", "1.0", true},
		{"vers:pypi/2.0.0", "2.0", true},
		{"vers:npm/<1.0.0|>=2.0.0", "0.9.0", true},
		{"vers:npm/<1.0.0|>=2.0.0", "1.5.0", false},
		{"vers:npm/<1.0.0|>=2.0.0", "2.1.0", true},
		{"vers:semver/>=1.0.0|<=1.4.2|!=1.2.0", "1.2.0", false},
		{"vers:semver/>=1.0.0|<=1.4.2|!=1.2.0", "1.3.0", true},
		{"vers:golang/<v1.4.0", "v1.3.9", true},
		{"vers:maven/>=1.2.3.4", "1.2.3.10", true},
		{"vers:pypi/*", "0.0.1", true},
	}
	for _, tt := range tests {
		r, err := Parse(tt.vers)
		require.NoError(t, err, tt.vers)
		got, err := r.Contains(tt.version)
		require.NoError(t, err, tt.vers)
		assert.Equal(t, tt.want, got, "%s contains %s", tt.vers, tt.version)
	}
}

func TestContainsBadVersion(t *testing.T) {
	r, err := Parse("vers:pypi/>=1.0")
	require.NoError(t, err)
	_, err = r.Contains("not-a-version")
	assert.Error(t, err)
}

func TestMarshalJSON(t *testing.T) {
	ranges, err := ResolveFixed("npm", []string{">=1.0.0", NotFixed})
	require.NoError(t, err)

	out, err := json.Marshal(ranges)
	require.NoError(t, err)
	assert.JSONEq(t, `["vers:npm/>=1.0.0","vers:npm/Not Fixed"]`, string(out))
}

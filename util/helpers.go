// Package util provides utility functions for working with Package URLs (PURLs),
// mapping between OSV ecosystems and PURL types, and exporting resolved
// version ranges in OSV form.
//
//revive:disable-next-line:var-naming
package util

import (
	"strings"

	"github.com/package-url/packageurl-go"
)

// IsEmpty checks if a string is empty or contains only whitespace
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// ParsePURL parses a PURL string and returns the parsed PackageURL
func ParsePURL(purlStr string) (*packageurl.PackageURL, error) {
	parsed, err := packageurl.FromString(purlStr)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ============================================================================
// ECOSYSTEM MAPPING
// ============================================================================

var ecosystemToPurlType = map[string]string{
	"npm":        "npm",
	"PyPI":       "pypi",
	"Maven":      "maven",
	"Go":         "golang",
	"NuGet":      "nuget",
	"RubyGems":   "gem",
	"crates.io":  "cargo",
	"Packagist":  "composer",
	"Pub":        "pub",
	"CocoaPods":  "cocoapods",
	"Hex":        "hex",
	"Alpine":     "apk",
	"Wolfi":      "apk",
	"Chainguard": "apk",
	"Debian":     "deb",
	"Ubuntu":     "deb",
}

// purlTypeToEcosystem is the reverse of ecosystemToPurlType.
// apk and deb map to their upstream distribution.
var purlTypeToEcosystem = map[string]string{
	"npm":       "npm",
	"pypi":      "PyPI",
	"maven":     "Maven",
	"golang":    "Go",
	"nuget":     "NuGet",
	"gem":       "RubyGems",
	"cargo":     "crates.io",
	"composer":  "Packagist",
	"pub":       "Pub",
	"cocoapods": "CocoaPods",
	"hex":       "Hex",
	"apk":       "Alpine",
	"deb":       "Debian",
}

// EcosystemToPurlType converts OSV ecosystem to PURL type
func EcosystemToPurlType(ecosystem string) string {
	// Try exact match first
	if purlType, exists := ecosystemToPurlType[ecosystem]; exists {
		return purlType
	}

	// Fallback: try case-insensitive
	for key, value := range ecosystemToPurlType {
		if strings.EqualFold(key, ecosystem) {
			return value
		}
	}

	// Last resort: return lowercase ecosystem
	return strings.ToLower(ecosystem)
}

// PurlTypeToOSVEcosystem converts a PURL type to the OSV ecosystem name.
// Unknown types are returned unchanged.
func PurlTypeToOSVEcosystem(purlType string) string {
	if eco, ok := purlTypeToEcosystem[strings.ToLower(purlType)]; ok {
		return eco
	}
	return purlType
}

// GetStandardBasePURL extracts a standardized base PURL (no version/qualifiers)
// Example: "pkg:apk/wolfi/glibc@2.42-r4" -> "pkg:apk/wolfi/glibc"
func GetStandardBasePURL(purlStr string) (string, error) {
	parsed, err := packageurl.FromString(purlStr)
	if err != nil {
		return "", err
	}

	base := packageurl.PackageURL{
		Type:      EcosystemToPurlType(parsed.Type),
		Namespace: parsed.Namespace,
		Name:      parsed.Name,
	}

	return strings.ToLower(base.ToString()), nil
}

// OSVPackageName returns the package name the way OSV records spell it.
// Maven joins group and artifact with ":", everything else uses "/".
func OSVPackageName(purl packageurl.PackageURL) string {
	if purl.Namespace == "" {
		return purl.Name
	}
	if purl.Type == packageurl.TypeMaven {
		return purl.Namespace + ":" + purl.Name
	}
	return purl.Namespace + "/" + purl.Name
}

// Package util provides utility functions for the backend.
//
//revive:disable-next-line:var-naming
package util

import (
	"github.com/google/osv-scanner/pkg/models"
	"github.com/ortelius/pdvd-llm-parser/versrange"
	"github.com/package-url/packageurl-go"
)

// BuildOSVAffected converts resolved affected and fixed ranges into an OSV
// affected entry for the package.
//
// Mapping of affected constraints: ">=" introduces, "<" fixes, "<=" is the
// last affected version and "=" lists an exact version. Fixed ranges
// contribute their "=" and ">=" versions as fix events. ">" and "!=" have no
// OSV event and are skipped. When nothing introduces the range OSV's "0"
// (from the beginning) is used.
func BuildOSVAffected(purl packageurl.PackageURL, affected, fixed []versrange.VersionRange) models.Affected {
	result := models.Affected{
		Package: models.Package{
			Ecosystem: models.Ecosystem(PurlTypeToOSVEcosystem(purl.Type)),
			Name:      OSVPackageName(purl),
		},
	}
	if base, err := GetStandardBasePURL(purl.ToString()); err == nil {
		result.Package.Purl = base
	}

	var introduced, closing []models.Event
	seen := make(map[models.Event]bool)
	add := func(list *[]models.Event, e models.Event) {
		if seen[e] {
			return
		}
		seen[e] = true
		*list = append(*list, e)
	}

	rangeType := models.RangeEcosystem
	for _, r := range affected {
		if r.Scheme == "semver" {
			rangeType = models.RangeSemVer
		}
		if r.NotFixed {
			continue
		}
		if r.All {
			add(&introduced, models.Event{Introduced: "0"})
			continue
		}
		for _, c := range r.Constraints {
			v := c.Version.String()
			switch c.Comparator {
			case versrange.GreaterOrEqual:
				add(&introduced, models.Event{Introduced: v})
			case versrange.LessThan:
				add(&closing, models.Event{Fixed: v})
			case versrange.LessOrEqual:
				add(&closing, models.Event{LastAffected: v})
			case versrange.Equal:
				result.Versions = append(result.Versions, v)
			}
		}
	}

	for _, r := range fixed {
		if r.NotFixed || r.All {
			continue
		}
		for _, c := range r.Constraints {
			if c.Comparator == versrange.Equal || c.Comparator == versrange.GreaterOrEqual {
				add(&closing, models.Event{Fixed: c.Version.String()})
			}
		}
	}

	if len(introduced) == 0 && len(closing) == 0 {
		return result
	}
	if len(introduced) == 0 {
		introduced = []models.Event{{Introduced: "0"}}
	}

	result.Ranges = []models.Range{{
		Type:   rangeType,
		Events: append(introduced, closing...),
	}}
	return result
}

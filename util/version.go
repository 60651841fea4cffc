// Package util provides utility functions for the backend.
//
//revive:disable-next-line:var-naming
package util

import (
	"github.com/ortelius/pdvd-llm-parser/versrange"
)

// IsVersionAffectedAny checks if a version is contained in any of the resolved ranges.
// The first range that cannot evaluate the version aborts the check.
func IsVersionAffectedAny(version string, ranges []versrange.VersionRange) (bool, error) {
	for _, r := range ranges {
		affected, err := r.Contains(version)
		if err != nil {
			return false, err
		}
		if affected {
			return true, nil
		}
	}
	return false, nil
}

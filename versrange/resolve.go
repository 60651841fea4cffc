package versrange

// Resolve turns constraint strings as emitted by the model into ranges of the
// given ecosystem. Each constraint is prefixed with "vers:<scheme>/" and
// parsed on its own, so the result has one range per input in input order.
//
// The ecosystem is checked before any constraint is looked at. The first
// constraint that fails to parse aborts the call and nothing is returned.
func Resolve(ecosystem string, constraints []string) ([]VersionRange, error) {
	return resolve(ecosystem, constraints, Parse)
}

// ResolveFixed is Resolve for fixed versions, which may hold "Not Fixed"
func ResolveFixed(ecosystem string, constraints []string) ([]VersionRange, error) {
	return resolve(ecosystem, constraints, ParseFixed)
}

func resolve(ecosystem string, constraints []string, parse func(string) (VersionRange, error)) ([]VersionRange, error) {
	scheme, ok := Lookup(ecosystem)
	if !ok {
		return nil, &UnsupportedEcosystemError{Ecosystem: ecosystem}
	}

	prefix := versPrefix + scheme.Name + "/"
	ranges := make([]VersionRange, 0, len(constraints))
	for _, c := range constraints {
		r, err := parse(prefix + c)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// Supported reports whether a scheme is registered for the ecosystem
func Supported(ecosystem string) bool {
	_, ok := Lookup(ecosystem)
	return ok
}

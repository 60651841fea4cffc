package versrange

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedEcosystem matches any UnsupportedEcosystemError
	ErrUnsupportedEcosystem = errors.New("unsupported ecosystem")
	// ErrMalformedRange matches any MalformedRangeError
	ErrMalformedRange = errors.New("malformed version range")
)

// UnsupportedEcosystemError is returned when no scheme is registered for an ecosystem
type UnsupportedEcosystemError struct {
	Ecosystem string
}

func (e *UnsupportedEcosystemError) Error() string {
	return fmt.Sprintf("unsupported ecosystem %q", e.Ecosystem)
}

// Is reports whether target is ErrUnsupportedEcosystem
func (e *UnsupportedEcosystemError) Is(target error) bool {
	return target == ErrUnsupportedEcosystem
}

// MalformedRangeError is returned when a range string cannot be parsed
type MalformedRangeError struct {
	Range string
	Err   error
}

func (e *MalformedRangeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed version range %q", e.Range)
	}
	return fmt.Sprintf("malformed version range %q: %v", e.Range, e.Err)
}

// Unwrap returns the underlying parse error
func (e *MalformedRangeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedRange
func (e *MalformedRangeError) Is(target error) bool {
	return target == ErrMalformedRange
}

func malformed(raw string, format string, args ...any) error {
	return &MalformedRangeError{Range: raw, Err: fmt.Errorf(format, args...)}
}

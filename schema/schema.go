// Package schema validates raw model output before it is allowed into the
// rest of the service. Two shapes are known: a single PURL and a pair of
// affected/fixed version lists.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/package-url/packageurl-go"
)

// Field names the model is instructed to emit
const (
	FieldPurl             = "string"
	FieldAffectedVersions = "affected_versions"
	FieldFixedVersions    = "fixed_versions"
)

// ErrSchemaValidation matches any ValidationError
var ErrSchemaValidation = errors.New("schema validation failed")

// ValidationError describes why model output was rejected
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := "schema validation failed"
	if e.Field != "" {
		msg += fmt.Sprintf(" on field %q", e.Field)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying decode or parse error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSchemaValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// ValidatePurl checks output of the form {"string": "pkg:..."} and returns the parsed PURL
func ValidatePurl(raw []byte) (packageurl.PackageURL, error) {
	fields, err := decodeObject(raw, FieldPurl)
	if err != nil {
		return packageurl.PackageURL{}, err
	}

	var purlStr string
	if err := decodeField(fields, FieldPurl, &purlStr, "must be a string"); err != nil {
		return packageurl.PackageURL{}, err
	}

	purl, err := packageurl.FromString(strings.TrimSpace(purlStr))
	if err != nil {
		return packageurl.PackageURL{}, &ValidationError{
			Field:  FieldPurl,
			Reason: fmt.Sprintf("invalid PURL %q", purlStr),
			Err:    err,
		}
	}
	return purl, nil
}

// ValidateVersions checks output of the form
// {"affected_versions": [...], "fixed_versions": [...]} and returns both lists in order.
func ValidateVersions(raw []byte) (affected []string, fixed []string, err error) {
	fields, err := decodeObject(raw, FieldAffectedVersions, FieldFixedVersions)
	if err != nil {
		return nil, nil, err
	}

	if err := decodeStringList(fields, FieldAffectedVersions, &affected); err != nil {
		return nil, nil, err
	}
	if err := decodeStringList(fields, FieldFixedVersions, &fixed); err != nil {
		return nil, nil, err
	}
	return affected, fixed, nil
}

// decodeObject decodes a JSON object and checks that it carries exactly the expected keys
func decodeObject(raw []byte, expected ...string) (map[string]json.RawMessage, error) {
	body := unwrapCodeFence(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &ValidationError{Reason: "output is not a JSON object", Err: err}
	}
	if fields == nil {
		return nil, &ValidationError{Reason: "output is null"}
	}

	for _, name := range expected {
		if _, ok := fields[name]; !ok {
			return nil, &ValidationError{Field: name, Reason: "field is missing"}
		}
	}

	if len(fields) != len(expected) {
		var unknown []string
		for name := range fields {
			if !contains(expected, name) {
				unknown = append(unknown, name)
			}
		}
		sort.Strings(unknown)
		return nil, &ValidationError{Reason: "unexpected fields " + strings.Join(unknown, ", ")}
	}
	return fields, nil
}

func decodeField(fields map[string]json.RawMessage, name string, out any, reason string) error {
	value := fields[name]
	if isNull(value) {
		return &ValidationError{Field: name, Reason: reason}
	}
	if err := json.Unmarshal(value, out); err != nil {
		return &ValidationError{Field: name, Reason: reason, Err: err}
	}
	return nil
}

func decodeStringList(fields map[string]json.RawMessage, name string, out *[]string) error {
	const reason = "must be a list of strings"

	var items []json.RawMessage
	if err := decodeField(fields, name, &items, reason); err != nil {
		return err
	}

	list := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if isNull(item) {
			return &ValidationError{Field: name, Reason: fmt.Sprintf("%s, item %d is null", reason, i)}
		}
		if err := json.Unmarshal(item, &s); err != nil {
			return &ValidationError{Field: name, Reason: fmt.Sprintf("%s, item %d", reason, i), Err: err}
		}
		list = append(list, s)
	}
	*out = list
	return nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// unwrapCodeFence strips a surrounding markdown code fence such as ```json ... ```
func unwrapCodeFence(raw []byte) []byte {
	body := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(body, []byte("```")) {
		return body
	}
	body = bytes.TrimPrefix(body, []byte("```"))
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		// drop the language tag line
		body = body[nl+1:]
	}
	body = bytes.TrimSuffix(bytes.TrimSpace(body), []byte("```"))
	return bytes.TrimSpace(body)
}

func contains(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}

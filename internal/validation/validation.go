// Package validation implements field-scoped request validation. Errors
// are collected per input field and reported together in one response
// body, rather than failing on the first problem. Handlers render a
// non-empty FieldErrors as HTTP 400 {"errors": {...}}.
package validation

import "strings"

// FieldErrors maps an input field name to the list of messages recorded
// against it. The zero value is not usable; call New.
type FieldErrors map[string][]string

// New returns an empty, ready-to-use FieldErrors.
func New() FieldErrors { return FieldErrors{} }

// Add records a message against a field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Empty reports whether no errors were recorded.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Require records a "field is required" error when value is blank after
// trimming, and returns the trimmed value either way.
func (fe FieldErrors) Require(field, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		fe.Add(field, "this field is required")
	}
	return v
}

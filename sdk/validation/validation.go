// Package validation holds small helpers shared by request and form checks.
package validation

import (
	"strings"
)

// FieldError reports a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every rejected field of one payload.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, f := range fe {
		msgs[i] = f.Field + ": " + f.Message
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the names of the rejected fields.
func (fe FieldErrors) Fields() []string {
	out := make([]string, len(fe))
	for i, f := range fe {
		out[i] = f.Field
	}
	return out
}

// Required rejects an empty value. Whitespace is content: " " passes.
func Required(field, value string) *FieldError {
	if value == "" {
		return &FieldError{Field: field, Message: "is required"}
	}
	return nil
}

// Check folds the failed checks into a FieldErrors, or nil when all passed.
func Check(checks ...*FieldError) error {
	var fe FieldErrors
	for _, c := range checks {
		if c != nil {
			fe = append(fe, *c)
		}
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// StringPtrIfNotEmpty returns a pointer to string if not empty, otherwise nil
func StringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}


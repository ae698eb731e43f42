package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports malformed input fields with field-level detail.
type ValidationError struct {
	// Fields maps a field name to a short description of its violation.
	Fields map[string]string
}

// NewValidationError creates a ValidationError for the given fields.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

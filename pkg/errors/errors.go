package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates a failed authentication attempt
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrInvalidStateTransition indicates a disallowed order status change
type ErrInvalidStateTransition struct {
	From interface{}
	To   interface{}
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %v to %v", e.From, e.To)
}

// FieldErrors collects per-field validation messages. All fields are
// validated together and reported at once rather than failing on the
// first invalid field.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

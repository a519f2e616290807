package flow

import (
	"errors"
	"sort"
	"strings"
)

// ErrInFlight is returned when a submission arrives while another on the
// same form is still running.
var ErrInFlight = errors.New("flow: submission already in progress")

// ValidationError maps form field names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "flow: invalid form: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// RejectedError means photo verification judged the photo not genuine.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return "flow: photo rejected: " + e.Reason
}

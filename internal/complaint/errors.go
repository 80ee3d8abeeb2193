package complaint

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure taxonomy. Handlers map these to HTTP
// status codes; the service never mutates anything before returning
// ErrForbidden.
var (
	// ErrNotFound covers both missing and malformed identifiers.
	ErrNotFound = errors.New("complaint not found")
	// ErrForbidden means the actor is authenticated but not allowed to
	// perform the requested operation.
	ErrForbidden = errors.New("not authorized")
	// ErrUserNotFound is returned when an assignment targets an unknown user.
	ErrUserNotFound = errors.New("assigned user not found")
)

// FieldError describes a single invalid input field. The JSON shape matches
// what clients of the legacy API already parse.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Param, f.Msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// add appends a field error and returns the receiver for chaining.
func (e *ValidationError) add(param, msg string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Param: param, Msg: msg})
	return e
}

// orNil returns nil when no field errors were collected, so callers can
// build up errors and return the result directly.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

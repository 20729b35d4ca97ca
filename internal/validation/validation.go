// Package validation defines the error returned when user input breaks a
// domain rule.
package validation

import (
	"errors"
	"fmt"
)

// Error reports which field was rejected and why.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// New returns a *Error for field.
func New(field, format string, args ...any) error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is or wraps a *Error.
func Is(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

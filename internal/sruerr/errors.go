// Package sruerr defines the single error kind shared by query construction,
// formatting and validation.
//
// Callers distinguish failures by message content. Every message names the
// offending value in single quotes.
package sruerr

import (
	"errors"
	"fmt"
)

// InvalidError reports a query, sort descriptor, request or configuration
// that cannot be built, formatted or validated.
type InvalidError struct {
	Message string
}

// Error implements the error interface.
func (e *InvalidError) Error() string {
	return e.Message
}

// Invalidf creates an InvalidError with a formatted message.
func Invalidf(format string, args ...any) error {
	return &InvalidError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalid reports whether err (or anything it wraps) is an InvalidError.
func IsInvalid(err error) bool {
	var invalid *InvalidError
	return errors.As(err, &invalid)
}

package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// PermissionError is returned for 401 and 403 responses.
type PermissionError struct {
	URL        string
	StatusCode int
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("not authorized to access %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsPermission reports whether err is a PermissionError.
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsStatus reports whether err is a StatusError.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

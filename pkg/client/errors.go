package client

import (
	"errors"
	"fmt"
	"strings"
)

// HTTPError represents a non-2xx HTTP response from the API whose body did
// not carry structured validation errors.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ValidationError carries the server-reported reasons a mutation was
// rejected, decoded from the API's list-of-{message} error body.
type ValidationError struct {
	StatusCode int
	Messages   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// IsStatus returns true if err (or any wrapped error) is an API error with
// the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.StatusCode == code
	}
	return false
}

// ValidationMessages returns the server validation messages carried by err,
// or nil when err holds none.
func ValidationMessages(err error) []string {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Messages
	}
	return nil
}

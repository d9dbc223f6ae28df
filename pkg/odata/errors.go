package odata

import (
	"errors"
	"fmt"
)

// ErrNotFound marks responses where 1C reported that the requested object
// does not exist. Use errors.Is to test for it.
var ErrNotFound = errors.New("object not found in 1C")

// Error is an API error communicated properly by the 1C server.
type Error struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Code is the odata.error code reported by 1C.
	Code string
	// Message is the human-readable part of the error.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("1C API error (HTTP %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	if target == ErrNotFound {
		return e.StatusCode == 404 || e.Code == "404"
	}
	return false
}

// ParseError means the server response could not be interpreted, either
// because it was not JSON or because an error body was missing the
// odata.error details.
type ParseError struct {
	Body string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse 1C response: %q", truncate(e.Body, 200))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

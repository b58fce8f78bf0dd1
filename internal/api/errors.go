package api

import (
	"errors"
	"fmt"
)

// Common API errors.
var (
	// ErrNotFound is returned when the book or list entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnprocessable is returned when the backend rejects the payload,
	// e.g. adding a book that is already on the list.
	ErrUnprocessable = errors.New("request rejected by server")
	// ErrServer is returned for 5xx responses.
	ErrServer = errors.New("server error")
)

// StatusError carries a non-2xx response that has no dedicated sentinel.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error %d", e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Body)
}

package gateway

import (
	"errors"
	"fmt"
)

// Sentinel errors for classified upstream failures. Callers match them with
// errors.Is and decide what, if anything, to show the user; this package
// never renders user-facing text.
var (
	// ErrUnauthenticated means the request carried no usable token (401,
	// or the token source could not produce one).
	ErrUnauthenticated = errors.New("authentication required")

	// ErrUnauthorized means the token was valid but the action is not
	// allowed (403).
	ErrUnauthorized = errors.New("not allowed")

	// ErrNotFound maps 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrConflict maps 409 responses. For offers this specifically means
	// "already taken by another interpreter".
	ErrConflict = errors.New("conflict")

	// ErrNetwork means no HTTP response was received at all.
	ErrNetwork = errors.New("network unavailable")

	// ErrMalformedResponse means the body did not match the expected
	// response envelope.
	ErrMalformedResponse = errors.New("malformed response")
)

// ServerError covers 5xx responses and any 4xx the taxonomy does not
// single out. It carries the status code and a best-effort message
// extracted from the response body.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
	return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
}

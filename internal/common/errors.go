// Package common defines shared constants and sentinel errors used across
// the terplink client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session lifecycle errors.
	ErrNotSignedIn  = errors.New("not signed in")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Configuration errors (fatal at startup).
	ErrNoBaseURL = errors.New("api base url is not configured")
)

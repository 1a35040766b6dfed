package cli

import (
	"errors"
	"fmt"

	"github.com/akoval/terplink/internal/client/forms"
	"github.com/akoval/terplink/internal/client/gateway"
	"github.com/akoval/terplink/internal/common"
)

// userMessage translates a classified error into the one-line, toast-style
// message shown to the interpreter. This is the only place user-facing
// error text exists; lower layers hand errors up unchanged.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *forms.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}

	var se *gateway.ServerError
	switch {
	case errors.Is(err, gateway.ErrConflict):
		return "That offer was already taken. Refresh to see the current list."
	case errors.Is(err, gateway.ErrNotFound):
		return "Not found. It may have been removed; try refreshing."
	case errors.Is(err, gateway.ErrUnauthenticated),
		errors.Is(err, common.ErrNotSignedIn),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrInvalidToken):
		return "Please sign in again."
	case errors.Is(err, gateway.ErrUnauthorized):
		return "You don't have access to that."
	case errors.Is(err, gateway.ErrNetwork):
		return "Could not reach the server. Check your connection and try again."
	case errors.Is(err, gateway.ErrMalformedResponse):
		return "The server sent an unexpected response. Try again later."
	case errors.As(err, &se):
		if se.Message != "" {
			return fmt.Sprintf("Server error (%d): %s", se.Status, se.Message)
		}
		return fmt.Sprintf("Server error (%d). Try again later.", se.Status)
	default:
		return "Something went wrong: " + err.Error()
	}
}

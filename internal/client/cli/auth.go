package cli

import (
	"context"
	"os"
)

// Login prompts for an access token obtained from the identity provider
// and starts a local session. The token is read without echo.
func (a *App) Login(ctx context.Context) error {
	token, err := GetSecret("Access token", os.Stdout)
	if err != nil {
		return a.fail(err)
	}
	if err := a.session.SignIn(token); err != nil {
		return a.fail(err)
	}
	printlnFn("Signed in as", a.session.UserID())
	return nil
}

// Logout ends the session and drops every cached entry and offer state.
func (a *App) Logout(ctx context.Context) error {
	a.session.SignOut()
	a.offers.Reset()
	printlnFn("Signed out.")
	return nil
}

package cli

import (
	"context"
	"os"
)

// PushToken registers a device push token so the server can notify this
// interpreter about new offers.
func (a *App) PushToken(ctx context.Context) error {
	token, err := GetSimpleText(a.reader, "Device push token", os.Stdout)
	if err != nil {
		return a.fail(err)
	}
	if err := a.profile.RegisterPushToken(ctx, token); err != nil {
		return a.fail(err)
	}
	printlnFn("Push token registered.")
	return nil
}

package cli

import "context"

// Refresh forces a synchronous refetch of appointments and offers,
// regardless of cache freshness. Either fetch failing fails the command.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.appointments.Refresh(ctx); err != nil {
		return a.fail(err)
	}
	if err := a.offers.Refresh(ctx); err != nil {
		return a.fail(err)
	}
	printlnFn("Refreshed.")
	return nil
}

package cli

import (
	"context"
	"fmt"
)

// Offers lists the currently available offers.
func (a *App) Offers(ctx context.Context) error {
	offerSet, err := a.offers.Available(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(offerSet) == 0 {
		printlnFn("No offers right now.")
		return nil
	}
	for _, o := range offerSet {
		printlnFn(fmt.Sprintf("%s  %s %s  %s (%.1f mi)", o.ID, o.Date, o.StartTime, o.FacilityName, o.DistanceMiles))
	}
	return nil
}

// Accept claims an offer. On success the agenda picks up the new
// appointment on its next read.
func (a *App) Accept(ctx context.Context, id string) error {
	if err := a.offers.Accept(ctx, id); err != nil {
		return a.fail(err)
	}
	printlnFn("Offer accepted. It will appear on your agenda.")
	return nil
}

// Decline removes an offer from this interpreter's list.
func (a *App) Decline(ctx context.Context, id string) error {
	if err := a.offers.Decline(ctx, id); err != nil {
		return a.fail(err)
	}
	printlnFn("Offer declined.")
	return nil
}

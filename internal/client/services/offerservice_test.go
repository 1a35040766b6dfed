package services

import (
	"context"
	"testing"
	"time"

	"github.com/akoval/terplink/internal/client/cache"
	"github.com/akoval/terplink/internal/client/gateway"
	"github.com/akoval/terplink/internal/client/models"
	"github.com/akoval/terplink/internal/client/offers"
	"github.com/stretchr/testify/require"
)

func newOfferFixture(t *testing.T) (*OfferService, *fakeGateway, *cache.Store, *testClock) {
	t.Helper()
	clk := newTestClock()
	store := cache.New(cache.WithClock(clk.now))
	session := signedInSession(t, store)
	gw := &fakeGateway{
		offers: []models.Offer{
			{ID: "o1", AppointmentID: "a10", BookingID: "b1", Date: "2024-12-27T00:00:00Z", StartTime: "09:00", FacilityName: "Mercy General", DistanceMiles: 3.2},
			{ID: "o2", AppointmentID: "a11", BookingID: "b2", Date: "2024-12-28T00:00:00Z", StartTime: "13:00", FacilityName: "St. Luke's", DistanceMiles: 11.7},
		},
	}
	svc := NewOfferService(gw, store, session, testLogger())
	return svc, gw, store, clk
}

// primeCaches loads both the offer set and the appointment list so tests
// can observe which entries a mutation invalidates.
func primeCaches(t *testing.T, svc *OfferService, store *cache.Store) {
	t.Helper()
	_, err := svc.Available(context.Background())
	require.NoError(t, err)

	apptKey := cache.Key{"appointments", "u1"}
	store.Put(apptKey, []models.Appointment{appt("a1", "2024-12-25T00:00:00Z")}, store.Begin(apptKey), 30*time.Second, 0)
}

func TestAvailable_CachesWithinPollInterval(t *testing.T) {
	svc, gw, _, clk := newOfferFixture(t)
	ctx := context.Background()

	got, err := svc.Available(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1, gw.counts(func(f *fakeGateway) int { return f.offersCalls }))

	_, err = svc.Available(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, gw.counts(func(f *fakeGateway) int { return f.offersCalls }))

	clk.advance(31 * time.Second)

	// Past the poll interval: serve the old set, refresh behind it.
	got, err = svc.Available(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Eventually(t, func() bool {
		return gw.counts(func(f *fakeGateway) int { return f.offersCalls }) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestAccept_Success(t *testing.T) {
	svc, gw, store, clk := newOfferFixture(t)
	primeCaches(t, svc, store)

	require.NoError(t, svc.Accept(context.Background(), "o1"))

	require.Equal(t, offers.StateTaken, svc.State("o1"))
	require.Equal(t, 1, gw.counts(func(f *fakeGateway) int { return f.acceptCalls }))

	// Accept resyncs both the offer set and the agenda source.
	require.True(t, stale(t, store, clk, cache.Key{"available-offers", "u1"}))
	require.True(t, stale(t, store, clk, cache.Key{"appointments", "u1"}))
}

func TestAccept_ConflictResyncsOffersOnly(t *testing.T) {
	svc, gw, store, clk := newOfferFixture(t)
	primeCaches(t, svc, store)

	gw.acceptErr = gateway.ErrConflict

	err := svc.Accept(context.Background(), "o1")
	require.ErrorIs(t, err, gateway.ErrConflict)

	// The offer went to someone else: resync the set, leave appointments alone.
	require.True(t, stale(t, store, clk, cache.Key{"available-offers", "u1"}))
	require.False(t, stale(t, store, clk, cache.Key{"appointments", "u1"}))
	require.Equal(t, offers.StateAvailable, svc.State("o1"))
}

func TestAccept_ConflictResyncDropsOffer(t *testing.T) {
	svc, gw, store, _ := newOfferFixture(t)
	primeCaches(t, svc, store)

	gw.mu.Lock()
	gw.acceptErr = gateway.ErrConflict
	gw.mu.Unlock()

	require.ErrorIs(t, svc.Accept(context.Background(), "o1"), gateway.ErrConflict)

	// The server no longer lists o1; the next read must converge on that.
	gw.mu.Lock()
	gw.offers = []models.Offer{{ID: "o2", AppointmentID: "a11", BookingID: "b2", Date: "2024-12-28T00:00:00Z", StartTime: "13:00"}}
	gw.mu.Unlock()

	require.Eventually(t, func() bool {
		got, err := svc.Available(context.Background())
		if err != nil {
			return false
		}
		for _, o := range got {
			if o.ID == "o1" {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond, "o1 must disappear after resync")
}

func TestAccept_GoneOfferSurfacesNotFound(t *testing.T) {
	svc, gw, store, _ := newOfferFixture(t)
	primeCaches(t, svc, store)

	gw.acceptErr = gateway.ErrNotFound

	err := svc.Accept(context.Background(), "o1")
	require.ErrorIs(t, err, gateway.ErrNotFound)
	require.Equal(t, offers.StateAvailable, svc.State("o1"))
}

func TestAccept_NetworkFailureLeavesEverythingAlone(t *testing.T) {
	svc, gw, store, clk := newOfferFixture(t)
	primeCaches(t, svc, store)

	gw.acceptErr = gateway.ErrNetwork

	err := svc.Accept(context.Background(), "o1")
	require.ErrorIs(t, err, gateway.ErrNetwork)

	require.False(t, stale(t, store, clk, cache.Key{"available-offers", "u1"}))
	require.False(t, stale(t, store, clk, cache.Key{"appointments", "u1"}))
	require.Equal(t, offers.StateAvailable, svc.State("o1"))
}

func TestDecline_Success(t *testing.T) {
	svc, gw, store, clk := newOfferFixture(t)
	primeCaches(t, svc, store)

	require.NoError(t, svc.Decline(context.Background(), "o2"))

	require.Equal(t, offers.StateDeclined, svc.State("o2"))
	require.Equal(t, 1, gw.counts(func(f *fakeGateway) int { return f.declineCalls }))

	// Decline resyncs the offer set but never the appointments.
	require.True(t, stale(t, store, clk, cache.Key{"available-offers", "u1"}))
	require.False(t, stale(t, store, clk, cache.Key{"appointments", "u1"}))
}

func TestDecline_FailureReturnsOfferToAvailable(t *testing.T) {
	svc, gw, store, clk := newOfferFixture(t)
	primeCaches(t, svc, store)

	gw.declineErr = gateway.ErrNetwork

	require.ErrorIs(t, svc.Decline(context.Background(), "o2"), gateway.ErrNetwork)
	require.Equal(t, offers.StateAvailable, svc.State("o2"))
	require.False(t, stale(t, store, clk, cache.Key{"available-offers", "u1"}))
}

func TestAcceptAfterLocalDecline_BlockedLocally(t *testing.T) {
	svc, _, store, _ := newOfferFixture(t)
	primeCaches(t, svc, store)

	require.NoError(t, svc.Decline(context.Background(), "o2"))

	err := svc.Accept(context.Background(), "o2")
	require.ErrorIs(t, err, offers.ErrBadTransition)
}

func TestReset_DropsMachines(t *testing.T) {
	svc, _, store, _ := newOfferFixture(t)
	primeCaches(t, svc, store)

	require.NoError(t, svc.Accept(context.Background(), "o1"))
	require.Equal(t, offers.StateTaken, svc.State("o1"))

	svc.Reset()
	require.Equal(t, offers.StateAvailable, svc.State("o1"))
}

package services

import (
	"context"
	"errors"
	"sync"

	"github.com/akoval/terplink/internal/client/cache"
	"github.com/akoval/terplink/internal/client/gateway"
	"github.com/akoval/terplink/internal/client/models"
	"github.com/akoval/terplink/internal/client/offers"
	"github.com/akoval/terplink/internal/logging"
)

// OfferService owns the offer reads and the accept/decline mutations with
// their invalidation rules:
//
//	accept success  -> {"available-offers", uid}, {"appointments", uid}
//	accept conflict -> {"available-offers", uid} only
//	decline success -> {"available-offers", uid}
//
// A state machine per offer guards against double submission while a call
// is in flight. Accept/decline is a single atomic remote operation from
// the client's perspective; the server's conflict response is the sole
// correctness backstop for contested offers.
type OfferService struct {
	gw      gateway.Client
	cache   *cache.Store
	session *Session
	log     logging.Logger

	mu       sync.Mutex
	machines map[string]*offers.Machine
}

func NewOfferService(gw gateway.Client, store *cache.Store, session *Session, log logging.Logger) *OfferService {
	return &OfferService{
		gw:       gw,
		cache:    store,
		session:  session,
		log:      log,
		machines: make(map[string]*offers.Machine),
	}
}

func (s *OfferService) offersKey() cache.Key {
	return cache.Key{"available-offers", s.session.UserID()}
}

// Available returns the current offer set, stale-while-revalidate like
// every other read. Entries carry a poll interval instead of a plain
// staleness window: offers vanish server-side without any local trigger.
func (s *OfferService) Available(ctx context.Context) ([]models.Offer, error) {
	key := s.offersKey()

	if v, ok := s.cache.Fresh(key); ok {
		return v.([]models.Offer), nil
	}
	if entry, ok := s.cache.Get(key); ok {
		go s.refresh()
		return entry.Value.([]models.Offer), nil
	}
	return s.fetch(ctx)
}

func (s *OfferService) fetch(ctx context.Context) ([]models.Offer, error) {
	key := s.offersKey()
	gen := s.cache.Begin(key)

	offerSet, err := s.gw.AvailableOffers(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Put(key, offerSet, gen, 0, offerPollInterval)
	return offerSet, nil
}

// Refresh forces a synchronous refetch of the offer set, bypassing any
// fresh cache entry. Used by the pull-to-refresh path.
func (s *OfferService) Refresh(ctx context.Context) error {
	_, err := s.fetch(ctx)
	return err
}

func (s *OfferService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
	defer cancel()

	if _, err := s.fetch(ctx); err != nil {
		s.log.Debug(ctx, "background offer refresh failed", "error", err)
	}
}

func (s *OfferService) machine(offerID string) *offers.Machine {
	m, ok := s.machines[offerID]
	if !ok {
		m = offers.NewMachine()
		s.machines[offerID] = m
	}
	return m
}

// State reports the client-side lifecycle state of an offer.
func (s *OfferService) State(offerID string) offers.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine(offerID).State()
}

// Accept claims an offer for the signed-in interpreter. A conflict (or a
// 404 for an offer that is already gone) is returned to the caller as the
// classified gateway error; the available-offers entry is invalidated so
// the next read resyncs with the server's current set. The appointments
// cache is only invalidated on success.
func (s *OfferService) Accept(ctx context.Context, offerID string) error {
	s.mu.Lock()
	m := s.machine(offerID)
	if err := m.BeginAccept(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	callErr := s.gw.AcceptOffer(ctx, offerID)

	s.mu.Lock()
	state := m.ResolveAccept(callErr)
	s.mu.Unlock()

	switch {
	case callErr == nil:
		s.cache.InvalidatePrefix(s.offersKey())
		s.cache.InvalidatePrefix(cache.Key{"appointments", s.session.UserID()})
		s.log.Info(ctx, "offer accepted", "offer_id", offerID, "state", state.String())
		return nil

	case errors.Is(callErr, gateway.ErrConflict), errors.Is(callErr, gateway.ErrNotFound):
		// Taken by someone else; drop it from the local set on resync.
		s.cache.InvalidatePrefix(s.offersKey())
		s.log.Info(ctx, "offer no longer available", "offer_id", offerID)
		return callErr

	default:
		s.log.Warn(ctx, "offer accept failed", "offer_id", offerID, "error", callErr)
		return callErr
	}
}

// Decline passes on an offer. Success removes it from the available set;
// failure leaves the cache untouched and the offer available.
func (s *OfferService) Decline(ctx context.Context, offerID string) error {
	s.mu.Lock()
	m := s.machine(offerID)
	if err := m.BeginDecline(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	callErr := s.gw.DeclineOffer(ctx, offerID)

	s.mu.Lock()
	state := m.ResolveDecline(callErr)
	s.mu.Unlock()

	if callErr != nil {
		s.log.Warn(ctx, "offer decline failed", "offer_id", offerID, "error", callErr)
		return callErr
	}

	s.cache.InvalidatePrefix(s.offersKey())
	s.log.Info(ctx, "offer declined", "offer_id", offerID, "state", state.String())
	return nil
}

// Reset drops all per-offer state machines. Invoked on sign-out together
// with the cache reset.
func (s *OfferService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines = make(map[string]*offers.Machine)
}

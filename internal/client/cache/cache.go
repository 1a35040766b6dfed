// Package cache implements the client-side query cache: a keyed,
// time-windowed store of fetched entities shared by every screen of the
// app. It is the only shared mutable state in the client; it is built
// explicitly and passed by reference, and reset wholesale on sign-out.
//
// Reads are synchronous and never block on staleness: a stale-but-present
// entry is returned as-is and the caller decides whether to refresh in the
// background (stale-while-revalidate). Writes go through a per-key
// generation counter so a fetch that completes out of order cannot
// overwrite a newer value.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Key identifies a cache entry as a tuple of entity kind plus
// discriminating ids, e.g. {"appointments", userID} or
// {"appointment", userID, id}. Prefix matching over key components drives
// invalidation.
type Key []string

// keySeparator never appears in ids, so joined keys stay unambiguous.
const keySeparator = "\x1f"

func (k Key) String() string {
	return strings.Join(k, keySeparator)
}

// HasPrefix reports whether k starts with all components of prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, p := range prefix {
		if k[i] != p {
			return false
		}
	}
	return true
}

// Entry is one cached value together with its staleness policy.
type Entry struct {
	Value     any
	FetchedAt time.Time

	// StaleAfter is the staleness window: once elapsed, readers should
	// trigger a background refetch. Zero means the entry never goes stale
	// by age.
	StaleAfter time.Duration

	// RefreshEvery marks polling entries: elapsed means a refresh is due
	// even if StaleAfter has not passed.
	RefreshEvery time.Duration

	invalidated bool
}

// Stale reports whether the entry should be refreshed at time now. An
// invalidated entry is always stale.
func (e *Entry) Stale(now time.Time) bool {
	if e.invalidated {
		return true
	}
	age := now.Sub(e.FetchedAt)
	if e.StaleAfter > 0 && age > e.StaleAfter {
		return true
	}
	if e.RefreshEvery > 0 && age > e.RefreshEvery {
		return true
	}
	return false
}

// Store is a mutex-guarded map of entries plus per-key fetch generations.
// The zero value is not usable; construct with New.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	issued  map[string]uint64 // latest generation handed out per key
	applied map[string]uint64 // latest generation written per key
	now     func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*Entry),
		issued:  make(map[string]uint64),
		applied: make(map[string]uint64),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the entry for key, if any. The copy's staleness
// flags reflect the moment of the call; mutating it does not touch the
// store.
func (s *Store) Get(key Key) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key.String()]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Fresh returns the cached value only when the entry exists and is not
// stale right now.
func (s *Store) Fresh(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key.String()]
	if !ok || e.Stale(s.now()) {
		return nil, false
	}
	return e.Value, true
}

// Begin registers the start of a fetch for key and returns its generation.
// Pass the generation to Put; a Put whose generation is older than the
// newest applied one is discarded.
func (s *Store) Begin(key Key) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key.String()
	s.issued[k]++
	return s.issued[k]
}

// Put stores value under key if gen is newer than the last applied write.
// It returns false when the write was discarded as out of date.
func (s *Store) Put(key Key, value any, gen uint64, staleAfter, refreshEvery time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key.String()
	if gen <= s.applied[k] {
		return false
	}
	s.applied[k] = gen
	s.entries[k] = &Entry{
		Value:        value,
		FetchedAt:    s.now(),
		StaleAfter:   staleAfter,
		RefreshEvery: refreshEvery,
	}
	return true
}

// InvalidatePrefix marks every entry whose key starts with prefix as
// stale, forcing the next read to refetch. The last known-good values stay
// readable until then. Returns the number of entries touched.
func (s *Store) InvalidatePrefix(prefix Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	joined := prefix.String()
	n := 0
	for k, e := range s.entries {
		if k == joined || strings.HasPrefix(k, joined+keySeparator) {
			e.invalidated = true
			n++
		}
	}
	return n
}

// Reset drops everything, including generation bookkeeping. Invoked on
// sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*Entry)
	s.issued = make(map[string]uint64)
	s.applied = make(map[string]uint64)
}

// Len reports the number of entries currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

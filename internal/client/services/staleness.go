package services

import "time"

// Staleness windows for the query cache. The appointment list tolerates
// 30s of staleness with refetch on demand; a single appointment is nearly
// always read right after the list, so its window is tight; the offer set
// is polled on an interval because offers appear and vanish server-side
// without any local trigger.
const (
	appointmentsStaleAfter = 30 * time.Second
	appointmentStaleAfter  = 3 * time.Second
	offerPollInterval      = 30 * time.Second
	directoryStaleAfter    = 5 * time.Minute

	// backgroundRefreshTimeout bounds stale-while-revalidate refetches,
	// which run detached from the caller's context.
	backgroundRefreshTimeout = 10 * time.Second
)

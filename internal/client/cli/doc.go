// Package cli provides the interactive TerpLink command-line client.
//
// It wires configuration, the HTTP gateway, the query cache, and an
// interactive REPL for a medical interpreter's day: reviewing the agenda,
// closing out appointments, booking follow-ups, and accepting or declining
// job offers.
//
// Key features:
//   - Login / Logout (token paste, no-echo entry)
//   - Agenda and appointment views backed by the stale-while-revalidate cache
//   - Close-out and follow-up forms with local validation
//   - Offer list with accept / decline and conflict-aware resync
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOfferPollWatcher, and runREPL for details.
package cli

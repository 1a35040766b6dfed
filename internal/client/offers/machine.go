// Package offers models the per-offer lifecycle on the client:
//
//	Available -> Accepting -> Taken
//	Available -> Declining -> Declined
//
// Accepting and Declining are transient, purely in-memory states entered
// on user confirmation and exited when the gateway responds. Nothing here
// survives an app restart; the server alone decides who wins a contested
// offer.
package offers

import (
	"errors"
	"fmt"
)

type State int

const (
	StateAvailable State = iota
	StateAccepting
	StateDeclining
	StateTaken
	StateDeclined
)

func (s State) String() string {
	switch s {
	case StateAvailable:
		return "available"
	case StateAccepting:
		return "accepting"
	case StateDeclining:
		return "declining"
	case StateTaken:
		return "taken"
	case StateDeclined:
		return "declined"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrBadTransition is returned when an action is not valid in the current
// state, e.g. accepting an offer whose accept is already in flight.
var ErrBadTransition = errors.New("invalid offer transition")

// Machine tracks one offer's client-side state. It is not safe for
// concurrent use; the owning service serializes access.
type Machine struct {
	state State
}

func NewMachine() *Machine {
	return &Machine{state: StateAvailable}
}

func (m *Machine) State() State { return m.state }

// Terminal reports whether the offer reached Taken or Declined.
func (m *Machine) Terminal() bool {
	return m.state == StateTaken || m.state == StateDeclined
}

// BeginAccept moves Available -> Accepting.
func (m *Machine) BeginAccept() error {
	if m.state != StateAvailable {
		return fmt.Errorf("%w: accept from %s", ErrBadTransition, m.state)
	}
	m.state = StateAccepting
	return nil
}

// ResolveAccept exits Accepting based on the gateway outcome: success
// lands on Taken; any failure (including conflict) returns the offer to
// Available — a conflicted offer is no longer obtainable, but that is the
// cache's concern, not this machine's.
func (m *Machine) ResolveAccept(callErr error) State {
	if m.state != StateAccepting {
		return m.state
	}
	if callErr == nil {
		m.state = StateTaken
	} else {
		m.state = StateAvailable
	}
	return m.state
}

// BeginDecline moves Available -> Declining.
func (m *Machine) BeginDecline() error {
	if m.state != StateAvailable {
		return fmt.Errorf("%w: decline from %s", ErrBadTransition, m.state)
	}
	m.state = StateDeclining
	return nil
}

// ResolveDecline exits Declining: success lands on Declined, failure
// returns to Available.
func (m *Machine) ResolveDecline(callErr error) State {
	if m.state != StateDeclining {
		return m.state
	}
	if callErr == nil {
		m.state = StateDeclined
	} else {
		m.state = StateAvailable
	}
	return m.state
}

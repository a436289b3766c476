package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: transition needs from, to and event")
	ErrInvalidEvent      = errors.New("statemachine: empty event")
	ErrInvalidState      = errors.New("statemachine: empty initial state")

	// ErrNoTransition is matched by a *TransitionError when the current state
	// has no transition for the event.
	ErrNoTransition = errors.New("statemachine: no transition")
	// ErrTransitionRejected is matched by a *TransitionError when every
	// candidate transition was blocked by a guard.
	ErrTransitionRejected = errors.New("statemachine: transition rejected by guards")
)

// TransitionError reports an event the machine refused to handle.
type TransitionError struct {
	State    string
	Event    string
	Rejected bool // a transition exists but its guards failed
}

func (e *TransitionError) Error() string {
	if e.Rejected {
		return fmt.Sprintf("statemachine: %q rejected by guards in state %q", e.Event, e.State)
	}
	return fmt.Sprintf("statemachine: no transition for %q in state %q", e.Event, e.State)
}

func (e *TransitionError) Unwrap() error {
	if e.Rejected {
		return ErrTransitionRejected
	}
	return ErrNoTransition
}

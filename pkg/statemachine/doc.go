// Package statemachine provides a small, type-safe finite state machine.
//
// States and events are any string-based types, so domain packages declare
// their own vocabularies:
//
//	type Status string
//	type Event string
//
//	const (
//	    Idle    Status = "idle"
//	    Running Status = "running"
//	    Start   Event  = "start"
//	)
//
//	machine := statemachine.MustNew[Status, Event](Idle,
//	    statemachine.WithTransition[Status, Event](Idle, Running, Start),
//	)
//
//	_ = machine.Fire(context.Background(), Start)
//
// # Guards and Actions
//
// Guards veto a transition based on runtime conditions; actions run after all
// guards pass and before the state changes. An action error aborts the
// transition and leaves the state untouched. Observers registered with
// WithObserver run after the state has changed, outside the internal lock, so
// they may safely read the machine.
//
// # Error Handling
//
// A refused event comes back as a *TransitionError that matches either
// ErrNoTransition or ErrTransitionRejected:
//
//	if errors.Is(err, statemachine.ErrNoTransition) { /* ... */ }
//
// # Concurrency
//
// Machine guards its state with a RWMutex: Current and CanFire take a read
// lock, Fire and Reset serialize.
package statemachine

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

// Kind classifies every failure a consumer can observe.
type Kind string

const (
	// KindNetwork is a transport or connectivity failure; retryable by user action.
	KindNetwork Kind = "network"
	// KindRemote is a rejection carrying a server-supplied message.
	KindRemote Kind = "remote"
	// KindUnknown is an unexpected response shape or a rejection without message.
	KindUnknown Kind = "unknown"
	// KindUnauthorized is a missing or expired session on an authenticated call.
	KindUnauthorized Kind = "unauthorized"
	// KindValidation is a client-side field check failure; never sent to the server.
	KindValidation Kind = "validation"
)

// Sentinels matching each Kind through errors.Is.
var (
	ErrNetwork      = errors.New("apiclient: network error")
	ErrRemote       = errors.New("apiclient: remote error")
	ErrUnknown      = errors.New("apiclient: unknown error")
	ErrUnauthorized = errors.New("apiclient: unauthorized")
	ErrValidation   = errors.New("apiclient: validation failed")

	ErrInvalidBaseURL = errors.New("apiclient: invalid base URL")
)

var kindSentinels = map[Kind]error{
	KindNetwork:      ErrNetwork,
	KindRemote:       ErrRemote,
	KindUnknown:      ErrUnknown,
	KindUnauthorized: ErrUnauthorized,
	KindValidation:   ErrValidation,
}

// Error is the classified error returned across the client boundary.
// Message is always human readable: either the server's own message or a
// localized fallback.
type Error struct {
	Kind    Kind
	Status  int               // HTTP status, 0 when no response was received
	Message string            // server message or fallback
	Fields  map[string]string // field-keyed messages for KindValidation
	Payload json.RawMessage   // raw JSON error body when the server sent one
	Err     error             // underlying cause, if any

	fallback bool
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap exposes the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// FromServer reports whether Message was supplied by the server.
func (e *Error) FromServer() bool {
	return !e.fallback
}

// WithFallback returns a copy whose message is replaced by msg when the
// server did not supply one.
func (e *Error) WithFallback(msg string) *Error {
	cp := *e
	if cp.fallback && msg != "" {
		cp.Message = msg
	}
	cp.Fields = maps.Clone(e.Fields)
	return &cp
}

// NewValidationError builds a KindValidation error from field messages.
func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{
		Kind:     KindValidation,
		Message:  message,
		Fields:   maps.Clone(fields),
		fallback: true,
	}
}

// NewUnauthorizedError builds the fail-fast error returned when an
// authenticated operation is attempted without a session.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, fallback: true}
}

// AsError extracts a classified *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindUnknown for unclassified errors and ""
// for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindUnknown
}

func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsNetwork(err error) bool      { return errors.Is(err, ErrNetwork) }

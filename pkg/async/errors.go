package async

import "errors"

var (
	// ErrAwaitCancelled is returned by AwaitContext when the context ends first.
	ErrAwaitCancelled = errors.New("async: context done before future completed")
	// ErrPanicked wraps the value recovered from a panicking function.
	ErrPanicked = errors.New("async: function panicked")
)

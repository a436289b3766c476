package logger

import "errors"

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("logger: unknown format")

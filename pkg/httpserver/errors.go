package httpserver

import "errors"

var (
	ErrStart          = errors.New("failed to start HTTP server")
	ErrAlreadyRunning = errors.New("server already running")
	ErrShutdown       = errors.New("failed to shutdown HTTP server gracefully")
)

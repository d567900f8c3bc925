package domain

import "errors"

// Error taxonomy shared by the REST and websocket boundaries. Handlers map
// these to HTTP status codes / socket error events with errors.Is.
var (
	// ErrValidation malformed input (empty content, missing destination...)
	ErrValidation = errors.New("validation error")
	// ErrInvalidDestination destination is neither a reachable user nor an active group
	ErrInvalidDestination = errors.New("invalid destination")
	// ErrNotFound message, group or notification does not exist
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized spoofed sender or non-member room access
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidTransition message status would regress its lifecycle
	ErrInvalidTransition = errors.New("invalid status transition")
)

package client

import "errors"

var (
	// ErrNetwork covers an unreachable collaborator or an unexpected
	// non-2xx reply. Surfaced to the user as a dismissible message and
	// never retried automatically.
	ErrNetwork = errors.New("collaborator request failed")

	// ErrUnauthorized is a 401 from the auth path (invalid credentials).
	ErrUnauthorized = errors.New("invalid email or password")

	// ErrNotFound is a 404 for an item the collaborator no longer has.
	ErrNotFound = errors.New("resource not found")

	// ErrRejected is a 4xx carrying a collaborator-supplied message,
	// e.g. a failed registration.
	ErrRejected = errors.New("request rejected")
)

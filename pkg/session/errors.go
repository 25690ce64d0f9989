package session

import "errors"

var (
	// ErrSessionNotFound indicates no session exists for the token.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrSessionExpired indicates the session exists but is past expiry.
	ErrSessionExpired = errors.New("session: expired")

	// ErrInvalidSession indicates a malformed or incomplete session record.
	ErrInvalidSession = errors.New("session: invalid")
)

package session

import "context"

// Store persists sessions keyed by token.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by token. Returns ErrSessionNotFound for
	// unknown tokens and ErrSessionExpired for stale ones.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error
}

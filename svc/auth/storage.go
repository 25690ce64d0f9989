package auth

import "context"

// Storage is the persistence contract the credential core consumes. Plaintext
// passwords never cross this boundary: the service hashes before calling
// CreateLocalCredential, and comparison happens in the service.
//
// Implementations must enforce credential uniqueness transactionally: the
// service performs check-then-create without a lock, so a race between two
// registrations for the same email has to fail on the storage constraint,
// not succeed twice.
type Storage interface {
	// FindLocalCredentialByEmail returns the local credential bound to email,
	// or ErrCredentialNotFound.
	FindLocalCredentialByEmail(ctx context.Context, email string) (*CredentialWithUser, error)

	// CreateLocalCredential creates a user and their local credential.
	// Returns ErrEmailAlreadyExists when the email is already taken.
	CreateLocalCredential(ctx context.Context, email string, passwordHash []byte) (*CredentialWithUser, error)

	// UpsertOAuthCredential finds or creates the credential for the given
	// external identity. An existing (provider, subject) credential is
	// returned with its PII refreshed from the identity; otherwise the
	// identity is merged into the user with the same email, or a brand-new
	// user is created.
	UpsertOAuthCredential(ctx context.Context, identity ExternalIdentity) (*CredentialWithUser, error)
}

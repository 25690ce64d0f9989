package auth

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the credential variants. A credential is either a local
// password or a link to an external identity provider; the two never share
// fields beyond ownership.
type Kind string

const (
	KindLocal Kind = "local"
	KindOAuth Kind = "oauth"
)

// OAuth provider identifiers used for storage keys and logging.
const (
	ProviderGoogle = "google"
	ProviderGithub = "github"
)

// User is the PII snapshot attached to every credential lookup. The
// authoritative record lives in storage; this struct is a per-call DTO and is
// never cached across operations.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Avatar    string
	CreatedAt time.Time
}

// Credential is one authentication method bound to a user.
//
// For KindLocal only PasswordHash is set; for KindOAuth only Provider and
// Subject are set. Storage enforces at most one local credential per email
// and exactly one oauth credential per (provider, subject) pair.
type Credential struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      Kind
	CreatedAt time.Time

	// Local variant.
	PasswordHash []byte

	// OAuth variant.
	Provider string
	Subject  string
}

// CredentialWithUser pairs a credential with the owning user's PII. All
// service operations resolve to this shape on success.
type CredentialWithUser struct {
	Credential Credential
	User       User
}

// ExternalIdentity is the provider-asserted payload handed to OAuth
// reconciliation. The upstream provider has already authenticated the caller;
// this core only records the identity.
type ExternalIdentity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
	Avatar   string
}

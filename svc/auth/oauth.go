package auth

import "context"

// ProviderAdapter hides provider-specific OAuth protocol details behind the
// two primitives the route layer needs. Implementations own the oauth2
// config, the code exchange, and the profile API calls.
type ProviderAdapter interface {
	// ProviderID returns a stable identifier used in storage keys and URLs,
	// e.g. "google".
	ProviderID() string

	// AuthURL builds the provider authorization URL carrying the given
	// anti-forgery state token.
	AuthURL(state string) string

	// ResolveIdentity exchanges an authorization code and returns the
	// normalized external identity. Returns ErrInvalidCode when the exchange
	// fails and ErrNoPrimaryEmail when the provider yields no email.
	ResolveIdentity(ctx context.Context, code string) (*ExternalIdentity, error)
}

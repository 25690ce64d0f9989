package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password on
	// local sign-in. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")

	// ErrEmailAlreadyExists signals a registration attempt for an email that
	// already has a local credential.
	ErrEmailAlreadyExists = errors.New("auth: email already registered")

	// ErrMissingIdentityData signals OAuth reconciliation invoked without a
	// usable provider payload. This is an integration error, not an
	// authentication failure.
	ErrMissingIdentityData = errors.New("auth: missing identity data")

	// ErrCredentialNotFound is returned by storage lookups that find nothing.
	ErrCredentialNotFound = errors.New("auth: credential not found")

	// ErrInvalidCode signals a failed OAuth code exchange.
	ErrInvalidCode = errors.New("auth: invalid authorization code")

	// ErrNoPrimaryEmail signals a provider profile without an email address.
	ErrNoPrimaryEmail = errors.New("auth: no primary email from provider")
)

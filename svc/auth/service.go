// Package auth implements the credential core: local sign-in, registration,
// OAuth reconciliation, and session token issuance. Persistence, token
// signing, and translation are consumed as collaborators; the package holds
// no credential state between calls.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// placeholderHash is what an unknown email gets compared against, so the
// "no such user" path burns the same bcrypt cost as a wrong password. This
// equalizes the dominant cost only; it is not a constant-time guarantee.
var placeholderHash = mustHash("")

func mustHash(s string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("auth: placeholder hash: %v", err))
	}
	return h
}

// Service exposes the credential operations consumed by the route layer.
type Service struct {
	storage    Storage
	bcryptCost int
	logger     *slog.Logger
}

// Option configures a Service during construction.
type Option func(*Service)

// WithBcryptCost sets the bcrypt cost used when hashing new passwords.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithLogger sets the service logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates the credential service.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate verifies a local email/password pair.
//
// Unknown email and wrong password both return ErrInvalidCredentials, and
// both paths run a bcrypt comparison, so neither the error nor (to the
// extent bcrypt allows) the timing reveals whether the email exists.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*CredentialWithUser, error) {
	email = normalizeEmail(email)

	cred, err := s.storage.FindLocalCredentialByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrCredentialNotFound) {
		return nil, fmt.Errorf("lookup credential: %w", err)
	}

	hash := placeholderHash
	if cred != nil {
		hash = cred.Credential.PasswordHash
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil || cred == nil {
		return nil, ErrInvalidCredentials
	}

	return cred, nil
}

// Register creates a local credential for a new email.
//
// The check-then-create here is advisory; the storage layer's uniqueness
// constraint is what actually serializes concurrent registrations, and its
// conflict surfaces as ErrEmailAlreadyExists.
func (s *Service) Register(ctx context.Context, email, password string) (*CredentialWithUser, error) {
	email = normalizeEmail(email)

	_, err := s.storage.FindLocalCredentialByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrCredentialNotFound) {
		return nil, fmt.Errorf("check existing credential: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred, err := s.storage.CreateLocalCredential(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create credential: %w", err)
	}

	s.logger.InfoContext(ctx, "local credential created",
		slog.String("user_id", cred.User.ID.String()),
		slog.String("component", "auth"),
	)
	return cred, nil
}

// OAuthSignIn reconciles a provider-verified identity into a local user
// record. No password verification happens here: trust is delegated to the
// upstream provider that already authenticated the caller.
func (s *Service) OAuthSignIn(ctx context.Context, identity *ExternalIdentity) (*CredentialWithUser, error) {
	if identity == nil || identity.Provider == "" || identity.Subject == "" {
		return nil, ErrMissingIdentityData
	}

	id := *identity
	id.Email = normalizeEmail(id.Email)

	cred, err := s.storage.UpsertOAuthCredential(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("upsert oauth credential: %w", err)
	}
	return cred, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

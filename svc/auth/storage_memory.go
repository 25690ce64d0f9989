package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-process Storage for tests and local development.
// A single mutex serializes check-and-insert, giving it the same uniqueness
// guarantees the Postgres schema provides.
type MemoryStorage struct {
	mu          sync.Mutex
	users       map[uuid.UUID]User
	local       map[string]Credential // email -> local credential
	oauth       map[string]Credential // provider/subject -> oauth credential
	emailToUser map[string]uuid.UUID
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:       make(map[uuid.UUID]User),
		local:       make(map[string]Credential),
		oauth:       make(map[string]Credential),
		emailToUser: make(map[string]uuid.UUID),
	}
}

var _ Storage = (*MemoryStorage)(nil)

func oauthKey(provider, subject string) string {
	return provider + "/" + subject
}

func (s *MemoryStorage) FindLocalCredentialByEmail(ctx context.Context, email string) (*CredentialWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.local[email]
	if !ok {
		return nil, ErrCredentialNotFound
	}
	return &CredentialWithUser{Credential: cred, User: s.users[cred.UserID]}, nil
}

func (s *MemoryStorage) CreateLocalCredential(ctx context.Context, email string, passwordHash []byte) (*CredentialWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emailToUser[email]; exists {
		return nil, ErrEmailAlreadyExists
	}

	now := time.Now()
	user := User{ID: uuid.New(), Email: email, CreatedAt: now}
	cred := Credential{
		ID:           uuid.New(),
		UserID:       user.ID,
		Kind:         KindLocal,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}

	s.users[user.ID] = user
	s.emailToUser[email] = user.ID
	s.local[email] = cred

	return &CredentialWithUser{Credential: cred, User: user}, nil
}

func (s *MemoryStorage) UpsertOAuthCredential(ctx context.Context, identity ExternalIdentity) (*CredentialWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := oauthKey(identity.Provider, identity.Subject)
	if cred, ok := s.oauth[key]; ok {
		user := s.users[cred.UserID]
		user.Name = identity.Name
		user.Avatar = identity.Avatar
		s.users[cred.UserID] = user
		return &CredentialWithUser{Credential: cred, User: user}, nil
	}

	now := time.Now()
	userID, ok := s.emailToUser[identity.Email]
	if !ok {
		user := User{
			ID:        uuid.New(),
			Email:     identity.Email,
			Name:      identity.Name,
			Avatar:    identity.Avatar,
			CreatedAt: now,
		}
		s.users[user.ID] = user
		s.emailToUser[identity.Email] = user.ID
		userID = user.ID
	}

	cred := Credential{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      KindOAuth,
		Provider:  identity.Provider,
		Subject:   identity.Subject,
		CreatedAt: now,
	}
	s.oauth[key] = cred

	return &CredentialWithUser{Credential: cred, User: s.users[userID]}, nil
}

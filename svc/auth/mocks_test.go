package auth

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) FindLocalCredentialByEmail(ctx context.Context, email string) (*CredentialWithUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CredentialWithUser), args.Error(1)
}

func (m *MockStorage) CreateLocalCredential(ctx context.Context, email string, passwordHash []byte) (*CredentialWithUser, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CredentialWithUser), args.Error(1)
}

func (m *MockStorage) UpsertOAuthCredential(ctx context.Context, identity ExternalIdentity) (*CredentialWithUser, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CredentialWithUser), args.Error(1)
}

// MockProviderAdapter is a testify mock implementation of ProviderAdapter.
type MockProviderAdapter struct {
	mock.Mock
}

func (m *MockProviderAdapter) ProviderID() string {
	return m.Called().String(0)
}

func (m *MockProviderAdapter) AuthURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockProviderAdapter) ResolveIdentity(ctx context.Context, code string) (*ExternalIdentity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExternalIdentity), args.Error(1)
}

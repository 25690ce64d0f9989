package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/jwt"
)

// TokenConfig is the process-wide signing configuration. Expiry is governed
// here, not per call.
type TokenConfig struct {
	SigningKey string        `env:"JWT_SIGNING_KEY,required"`
	Issuer     string        `env:"JWT_ISSUER" envDefault:"authkit"`
	TTL        time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

// SessionClaims is the payload asserted in issued session tokens: the user
// id as subject plus the PII the session layer wants to render without a
// storage round trip.
type SessionClaims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// TokenIssuer mints signed, time-bounded session tokens. Construction fails
// on unusable signing configuration; issuance itself has no failure mode
// tied to the request.
type TokenIssuer struct {
	codec  *jwt.Service
	issuer string
	ttl    time.Duration
}

// NewTokenIssuer validates the signing configuration and builds the issuer.
// A missing key returns jwt.ErrMissingSigningKey: callers should treat this
// as fatal at startup.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	codec, err := jwt.NewFromString(cfg.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{codec: codec, issuer: cfg.Issuer, ttl: ttl}, nil
}

// Issue signs a session token for the resolved credential. Verification and
// registration must have completed before this is called; issuance never
// runs against an unresolved credential.
func (i *TokenIssuer) Issue(cred *CredentialWithUser) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		StandardClaims: jwt.StandardClaims{
			ID:        uuid.NewString(),
			Subject:   cred.User.ID.String(),
			Issuer:    i.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(i.ttl).Unix(),
		},
		Email: cred.User.Email,
		Name:  cred.User.Name,
	}
	return i.codec.Sign(claims)
}

// Parse verifies a session token and returns its claims.
func (i *TokenIssuer) Parse(token string) (*SessionClaims, error) {
	var claims SessionClaims
	if err := i.codec.Verify(token, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// TTL reports the configured token lifetime, used by the session layer to
// align cookie expiry with token expiry.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

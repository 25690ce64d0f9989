package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStorage is the Postgres-backed credential storage. Uniqueness is carried
// by the schema (unique email on users, unique (provider, subject) on oauth
// credentials), which is what resolves concurrent registration races.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage wraps an existing connection pool.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

var _ Storage = (*PGStorage)(nil)

const credentialColumns = `
	c.id, c.user_id, c.kind, c.password_hash, c.provider, c.subject, c.created_at,
	u.id, u.email, u.name, u.avatar, u.created_at`

func scanCredential(row pgx.Row) (*CredentialWithUser, error) {
	var out CredentialWithUser
	err := row.Scan(
		&out.Credential.ID, &out.Credential.UserID, &out.Credential.Kind,
		&out.Credential.PasswordHash, &out.Credential.Provider,
		&out.Credential.Subject, &out.Credential.CreatedAt,
		&out.User.ID, &out.User.Email, &out.User.Name, &out.User.Avatar,
		&out.User.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (s *PGStorage) FindLocalCredentialByEmail(ctx context.Context, email string) (*CredentialWithUser, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+credentialColumns+`
		FROM credentials c
		JOIN users u ON u.id = c.user_id
		WHERE c.kind = 'local' AND u.email = $1`,
		email,
	)
	return scanCredential(row)
}

func (s *PGStorage) CreateLocalCredential(ctx context.Context, email string, passwordHash []byte) (*CredentialWithUser, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var out CredentialWithUser
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email)
		VALUES ($1)
		RETURNING id, email, name, avatar, created_at`,
		email,
	).Scan(&out.User.ID, &out.User.Email, &out.User.Name, &out.User.Avatar, &out.User.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO credentials (user_id, kind, password_hash)
		VALUES ($1, 'local', $2)
		RETURNING id, user_id, kind, password_hash, provider, subject, created_at`,
		out.User.ID, passwordHash,
	).Scan(
		&out.Credential.ID, &out.Credential.UserID, &out.Credential.Kind,
		&out.Credential.PasswordHash, &out.Credential.Provider,
		&out.Credential.Subject, &out.Credential.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("insert credential: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &out, nil
}

func (s *PGStorage) UpsertOAuthCredential(ctx context.Context, identity ExternalIdentity) (*CredentialWithUser, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Existing link: refresh the PII snapshot and return.
	existing, err := s.findOAuth(ctx, tx, identity.Provider, identity.Subject)
	if err != nil && !errors.Is(err, ErrCredentialNotFound) {
		return nil, err
	}
	if existing != nil {
		_, err = tx.Exec(ctx, `UPDATE users SET name = $2, avatar = $3 WHERE id = $1`,
			existing.User.ID, identity.Name, identity.Avatar)
		if err != nil {
			return nil, fmt.Errorf("refresh user: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("commit: %w", err)
		}
		existing.User.Name = identity.Name
		existing.User.Avatar = identity.Avatar
		return existing, nil
	}

	// Merge into the user holding this email, or create a fresh one.
	var userID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, identity.Email).Scan(&userID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		err = tx.QueryRow(ctx, `
			INSERT INTO users (email, name, avatar)
			VALUES ($1, $2, $3)
			RETURNING id`,
			identity.Email, identity.Name, identity.Avatar,
		).Scan(&userID)
		if err != nil {
			if isUniqueViolation(err) {
				// A concurrent sign-in took the email or the link first.
				_ = tx.Rollback(ctx)
				return s.recoverOAuthRace(ctx, identity)
			}
			return nil, fmt.Errorf("insert user: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO credentials (user_id, kind, provider, subject)
		VALUES ($1, 'oauth', $2, $3)`,
		userID, identity.Provider, identity.Subject,
	)
	if err != nil {
		if isUniqueViolation(err) {
			_ = tx.Rollback(ctx)
			return s.recoverOAuthRace(ctx, identity)
		}
		return nil, fmt.Errorf("insert credential: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return s.findOAuth(ctx, s.pool, identity.Provider, identity.Subject)
}

// recoverOAuthRace runs after a unique violation during upsert: when the
// loser of the race re-reads, the winner's credential is already visible and
// upsert semantics say to return it.
func (s *PGStorage) recoverOAuthRace(ctx context.Context, identity ExternalIdentity) (*CredentialWithUser, error) {
	cred, err := s.findOAuth(ctx, s.pool, identity.Provider, identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("recover concurrent upsert: %w", err)
	}
	return cred, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *PGStorage) findOAuth(ctx context.Context, q queryRower, provider, subject string) (*CredentialWithUser, error) {
	row := q.QueryRow(ctx, `
		SELECT `+credentialColumns+`
		FROM credentials c
		JOIN users u ON u.id = c.user_id
		WHERE c.kind = 'oauth' AND c.provider = $1 AND c.subject = $2`,
		provider, subject,
	)
	return scanCredential(row)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

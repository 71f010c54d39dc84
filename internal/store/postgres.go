package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ayush/auth-backend/internal/models"
)

// poolIface is the subset of pgxpool.Pool the store uses; pgxmock satisfies
// it in tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore handles user CRUD against PostgreSQL.
type PostgresStore struct {
	pool poolIface
}

func NewPostgresStore(pool poolIface) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users table if it doesn't exist. The partial index
// backs the token-variant lookup by reset secret.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id                      UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email                   VARCHAR(255) UNIQUE NOT NULL,
			password_hash           VARCHAR(255) NOT NULL,
			reset_secret            TEXT,
			reset_secret_expires_at TIMESTAMPTZ,
			created_at              TIMESTAMPTZ  DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_users_reset_secret
			ON users (reset_secret) WHERE reset_secret IS NOT NULL
	`)
	return err
}

func (s *PostgresStore) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, email, created_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.PasswordHash = passwordHash
	return &u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, email, password_hash, reset_secret, reset_secret_expires_at, created_at
		 FROM users WHERE email = $1`, email)
}

func (s *PostgresStore) GetUserByResetSecret(ctx context.Context, secret string) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, email, password_hash, reset_secret, reset_secret_expires_at, created_at
		 FROM users WHERE reset_secret = $1`, secret)
}

func (s *PostgresStore) getUser(ctx context.Context, query, key string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, query, key).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.ResetSecret, &u.ResetSecretExpiry, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// SaveUser persists the mutable fields of an existing record.
func (s *PostgresStore) SaveUser(ctx context.Context, u *models.User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users
		 SET password_hash = $2, reset_secret = $3, reset_secret_expires_at = $4
		 WHERE id = $1`,
		u.ID, u.PasswordHash, u.ResetSecret, u.ResetSecretExpiry,
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

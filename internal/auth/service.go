package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayush/auth-backend/internal/models"
	"github.com/ayush/auth-backend/internal/store"
)

// UserStore defines the persistence operations registration and login need.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service implements registration and login on top of a user store.
type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Register creates a user with a freshly hashed password. The email is
// normalized before the uniqueness check.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if len(password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.users.CreateUser(ctx, email, hashed)
}

// Authenticate verifies credentials. Unknown emails and wrong passwords fail
// with the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.GetUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

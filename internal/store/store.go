// Package store provides user persistence backends. All of them key records
// by normalized email and enforce email uniqueness at write time.
package store

import (
	"context"
	"errors"

	"github.com/ayush/auth-backend/internal/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when creating a user whose email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the full persistence surface a backend implements. Callers
// should match failures with errors.Is against the sentinels above.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByResetSecret(ctx context.Context, secret string) (*models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
}

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayush/auth-backend/internal/models"
)

// MemoryStore is a mutex-guarded in-memory UserStore used by tests and by
// STORE_BACKEND=memory for local development. Lookups return copies so a
// caller's mutations only take effect through SaveUser.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by normalized email
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*models.User)}
}

func (s *MemoryStore) CreateUser(_ context.Context, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return nil, ErrDuplicateEmail
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[email] = u
	return copyUser(u), nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) GetUserByResetSecret(_ context.Context, secret string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ResetSecret != nil && *u.ResetSecret == secret {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SaveUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; !ok {
		return ErrNotFound
	}
	s.users[u.Email] = copyUser(u)
	return nil
}

func copyUser(u *models.User) *models.User {
	cp := *u
	if u.ResetSecret != nil {
		secret := *u.ResetSecret
		cp.ResetSecret = &secret
	}
	if u.ResetSecretExpiry != nil {
		expiry := *u.ResetSecretExpiry
		cp.ResetSecretExpiry = &expiry
	}
	return &cp
}

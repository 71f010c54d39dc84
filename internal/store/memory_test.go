package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u, err := s.CreateUser(ctx, "a@b.com", "hashed-pw")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	got, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hashed-pw", got.PasswordHash)

	_, err = s.GetUserByEmail(ctx, "missing@b.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateUser(ctx, "a@b.com", "other-hash")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryStore_MutationsOnlyThroughSave(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.CreateUser(ctx, "a@b.com", "hashed-pw")
	require.NoError(t, err)

	u, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)

	secret := "123456"
	expiry := time.Now().Add(10 * time.Minute)
	u.ResetSecret = &secret
	u.ResetSecretExpiry = &expiry

	// not saved yet: the stored record is untouched
	fresh, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, fresh.ResetSecret)

	require.NoError(t, s.SaveUser(ctx, u))

	saved, err := s.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, saved.ResetSecret)
	assert.Equal(t, secret, *saved.ResetSecret)

	bySecret, err := s.GetUserByResetSecret(ctx, secret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, bySecret.ID)

	_, err = s.GetUserByResetSecret(ctx, "999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SaveUnknownUser(t *testing.T) {
	s := NewMemoryStore()
	err := s.SaveUser(context.Background(), testUser("u1", "ghost@b.com", "hashed-pw"))
	assert.ErrorIs(t, err, ErrNotFound)
}

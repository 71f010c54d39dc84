package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/auth-backend/internal/models"
)

// MinPasswordLen is the minimum accepted plaintext password length.
const MinPasswordLen = 6

// HashPassword derives a salted bcrypt hash from the plaintext. bcrypt embeds
// a per-hash random salt and the default cost of 10 rounds.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SetPassword validates the plaintext and overwrites the record's hash with a
// fresh one. This is the only way a password is ever assigned; the caller
// persists the change.
func SetPassword(u *models.User, password string) error {
	if len(password) < MinPasswordLen {
		return ErrWeakPassword
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hashed
	return nil
}

package reset

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ayush/auth-backend/internal/auth"
	"github.com/ayush/auth-backend/internal/models"
	"github.com/ayush/auth-backend/internal/store"
)

// UserStore defines the persistence operations the lifecycle needs.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByResetSecret(ctx context.Context, secret string) (*models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
}

// Mailer delivers reset secrets out of band. Calls are single-attempt; a
// failure surfaces immediately with no retry.
type Mailer interface {
	SendOTP(to, otp string) error
	SendResetLink(to, url string) error
}

// Service drives the issue → verify → consume state machine for reset secrets.
type Service struct {
	users    UserStore
	mailer   Mailer
	strategy Strategy
	linkBase string
	now      func() time.Time
}

func NewService(users UserStore, mailer Mailer, strategy Strategy, linkBase string) *Service {
	return &Service{
		users:    users,
		mailer:   mailer,
		strategy: strategy,
		linkBase: strings.TrimRight(linkBase, "/"),
		now:      time.Now,
	}
}

// Variant reports which secret form this deployment issues.
func (s *Service) Variant() Variant { return s.strategy.Variant() }

// Issue generates a fresh secret for the account, persists it, and hands it
// to the mailer. Issuing again overwrites any previous secret, so only the
// newest one is valid. Unknown emails return nil so the caller's response
// cannot distinguish them from success. A delivery failure rolls the secret
// back before it surfaces: a secret that was never delivered must not stay
// live.
func (s *Service) Issue(ctx context.Context, email string) error {
	u, err := s.users.GetUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	secret, err := s.strategy.Generate()
	if err != nil {
		return err
	}
	expiry := s.now().Add(s.strategy.TTL())
	u.ResetSecret = &secret
	u.ResetSecretExpiry = &expiry
	if err := s.users.SaveUser(ctx, u); err != nil {
		return fmt.Errorf("save secret: %w", err)
	}

	if err := s.deliver(u.Email, secret); err != nil {
		u.ResetSecret = nil
		u.ResetSecretExpiry = nil
		if saveErr := s.users.SaveUser(ctx, u); saveErr != nil {
			log.Printf("rollback undelivered secret for %s: %v", u.Email, saveErr)
		}
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	return nil
}

// Verify checks identifier and secret without consuming the secret; it stays
// valid until consumed or expired. Detecting expiry clears the secret before
// reporting ErrSecretExpired, and that is the only verify-time side effect.
func (s *Service) Verify(ctx context.Context, identifier, secret string) error {
	u, err := s.find(ctx, identifier, secret)
	if err != nil {
		return err
	}
	return s.checkSecret(ctx, u, secret)
}

// Consume re-runs the verify checks independently, then sets the new password
// and clears the secret in a single save. The password is validated up front
// so a weak one leaves the record exactly as it was.
func (s *Service) Consume(ctx context.Context, identifier, secret, newPassword string) error {
	if len(newPassword) < auth.MinPasswordLen {
		return auth.ErrWeakPassword
	}

	u, err := s.find(ctx, identifier, secret)
	if err != nil {
		return err
	}
	if err := s.checkSecret(ctx, u, secret); err != nil {
		return err
	}

	if err := auth.SetPassword(u, newPassword); err != nil {
		return err
	}
	u.ResetSecret = nil
	u.ResetSecretExpiry = nil
	if err := s.users.SaveUser(ctx, u); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// find locates the record the secret belongs to. OTP codes are not globally
// unique, so that variant looks up by email; tokens are their own lookup key.
func (s *Service) find(ctx context.Context, identifier, secret string) (*models.User, error) {
	if s.strategy.Variant() == VariantToken {
		return s.users.GetUserByResetSecret(ctx, secret)
	}
	return s.users.GetUserByEmail(ctx, models.NormalizeEmail(identifier))
}

// checkSecret runs the ordered checks: secret present → match → unexpired.
// A secret is invalid from its expiry instant onward.
func (s *Service) checkSecret(ctx context.Context, u *models.User, secret string) error {
	if u.ResetSecret == nil || u.ResetSecretExpiry == nil {
		return ErrNoActiveSecret
	}
	if subtle.ConstantTimeCompare([]byte(*u.ResetSecret), []byte(secret)) != 1 {
		return ErrSecretMismatch
	}
	if !u.ResetSecretExpiry.After(s.now()) {
		u.ResetSecret = nil
		u.ResetSecretExpiry = nil
		if err := s.users.SaveUser(ctx, u); err != nil {
			return fmt.Errorf("clear expired secret: %w", err)
		}
		return ErrSecretExpired
	}
	return nil
}

func (s *Service) deliver(email, secret string) error {
	if s.strategy.Variant() == VariantToken {
		return s.mailer.SendResetLink(email, s.linkBase+"/reset-password/"+secret)
	}
	return s.mailer.SendOTP(email, secret)
}

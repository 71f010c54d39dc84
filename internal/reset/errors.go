// Package reset implements the reset-secret lifecycle: a user record moves
// from no active secret to an issued one, and back on consume, expiry, or
// overwrite by a newer issue.
package reset

import "errors"

var (
	// ErrNoActiveSecret is returned when the record holds no reset secret.
	ErrNoActiveSecret = errors.New("no active reset secret")
	// ErrSecretMismatch is returned when the provided secret differs from
	// the stored one.
	ErrSecretMismatch = errors.New("reset secret mismatch")
	// ErrSecretExpired is returned when the secret's validity window has
	// passed. Detection clears the secret, so a retry sees ErrNoActiveSecret.
	ErrSecretExpired = errors.New("reset secret expired")
	// ErrDeliveryFailure is returned when the notification gateway could not
	// deliver the secret. The undelivered secret is rolled back first.
	ErrDeliveryFailure = errors.New("email delivery failed")
)

// Package auth owns the credential discipline: password hashing, registration,
// and login. Sentinel errors are matched with errors.Is by the HTTP layer.
package auth

import "errors"

var (
	// ErrInvalidInput is returned for missing or malformed fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrWeakPassword is returned for passwords shorter than MinPasswordLen.
	ErrWeakPassword = errors.New("password too short")
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords, so login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

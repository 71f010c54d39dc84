package models

import (
	"strings"
	"time"
)

// User represents a registered account. The reset fields are set and cleared
// together: a non-nil ResetSecret always has a matching ResetSecretExpiry.
type User struct {
	ID                string     `json:"id" bson:"_id"`
	Email             string     `json:"email" bson:"email"`
	PasswordHash      string     `json:"-" bson:"password_hash"` // never serialize
	ResetSecret       *string    `json:"-" bson:"reset_secret"`
	ResetSecretExpiry *time.Time `json:"-" bson:"reset_secret_expires_at"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
}

// NormalizeEmail lower-cases and trims an address. Every lookup and write
// keys on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterRequest is the JSON body for POST /api/user/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /api/user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the JSON body for POST /api/password-reset/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest is the JSON body for POST /api/password-reset/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest is the JSON body for POST /api/password-reset/reset-password.
// OTP deployments send email+otp, token deployments send token.
type ResetPasswordRequest struct {
	Email       string `json:"email,omitempty"`
	OTP         string `json:"otp,omitempty"`
	Token       string `json:"token,omitempty"`
	NewPassword string `json:"newPassword"`
}

// UserInfo is the only user data ever echoed back to a client.
type UserInfo struct {
	Email string `json:"email"`
}

// Response is the envelope every endpoint returns. Secrets and password
// hashes never appear in it.
type Response struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    *UserInfo `json:"user,omitempty"`
}

package reset

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// Variant selects which reset-secret form a deployment issues. It is chosen
// once at configuration time.
type Variant string

const (
	VariantOTP   Variant = "otp"
	VariantToken Variant = "token"
)

const (
	otpTTL     = 10 * time.Minute
	tokenTTL   = 60 * time.Minute
	tokenBytes = 32
)

// Strategy generates reset secrets and knows how long they stay valid. Both
// implementations draw from crypto/rand; a predictable source would defeat
// the point of the secret.
type Strategy interface {
	Variant() Variant
	Generate() (string, error)
	TTL() time.Duration
}

// NewStrategy returns the strategy for the configured variant.
func NewStrategy(v Variant) (Strategy, error) {
	switch v {
	case VariantOTP:
		return otpStrategy{}, nil
	case VariantToken:
		return tokenStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown reset variant %q", v)
	}
}

type otpStrategy struct{}

func (otpStrategy) Variant() Variant { return VariantOTP }

func (otpStrategy) TTL() time.Duration { return otpTTL }

// Generate draws a uniformly random 6-digit code from [100000, 999999].
func (otpStrategy) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

type tokenStrategy struct{}

func (tokenStrategy) Variant() Variant { return VariantToken }

func (tokenStrategy) TTL() time.Duration { return tokenTTL }

// Generate returns 32 random bytes, hex-encoded.
func (tokenStrategy) Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

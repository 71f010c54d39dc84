package reset

import (
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPStrategy(t *testing.T) {
	s, err := NewStrategy(VariantOTP)
	require.NoError(t, err)
	assert.Equal(t, VariantOTP, s.Variant())
	assert.Equal(t, 10*time.Minute, s.TTL())

	for i := 0; i < 100; i++ {
		otp, err := s.Generate()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestTokenStrategy(t *testing.T) {
	s, err := NewStrategy(VariantToken)
	require.NoError(t, err)
	assert.Equal(t, VariantToken, s.Variant())
	assert.Equal(t, 60*time.Minute, s.TTL())

	tok, err := s.Generate()
	require.NoError(t, err)
	assert.Len(t, tok, 64)
	_, err = hex.DecodeString(tok)
	assert.NoError(t, err)

	other, err := s.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestNewStrategyUnknownVariant(t *testing.T) {
	_, err := NewStrategy(Variant("sms"))
	assert.Error(t, err)
}

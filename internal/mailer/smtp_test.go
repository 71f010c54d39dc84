package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("Password Reset <noreply@example.com>", "noreply@example.com",
		"user@example.com", "Password Reset OTP", "plain body", "<p>html body</p>")

	assert.True(t, strings.HasPrefix(msg, "From: Password Reset <noreply@example.com>\r\n"))
	assert.Contains(t, msg, "To: user@example.com\r\n")
	assert.Contains(t, msg, "Subject: Password Reset OTP\r\n")
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, msg, "plain body")
	assert.Contains(t, msg, "<p>html body</p>")

	// boundary opens each part and closes the message
	boundary := msg[strings.Index(msg, "boundary=")+len("boundary=") : strings.Index(msg, "\r\n\r\n")]
	require.NotEmpty(t, boundary)
	assert.Equal(t, 2, strings.Count(msg, "--"+boundary+"\r\n"))
	assert.Contains(t, msg, "--"+boundary+"--\r\n")
}

func TestHTMLBodiesCarryTheSecret(t *testing.T) {
	assert.Contains(t, otpHTML("123456"), "123456")
	assert.Contains(t, linkHTML("http://localhost:3000/reset-password/abc"),
		`href="http://localhost:3000/reset-password/abc"`)
}

func TestDisabledMailerSendsNothing(t *testing.T) {
	m := New(Config{Disabled: true})
	assert.NoError(t, m.SendOTP("user@example.com", "123456"))
	assert.NoError(t, m.SendResetLink("user@example.com", "http://localhost:3000/reset-password/abc"))
}

func TestUnconfiguredMailerFails(t *testing.T) {
	m := New(Config{})
	assert.Error(t, m.SendOTP("user@example.com", "123456"))
}

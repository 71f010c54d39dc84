// Package mailer sends password-reset emails over SMTP. One attempt per
// message; the caller decides what a failure means.
package mailer

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Config holds the SMTP account settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	// Disabled logs the message instead of sending it. Local development only.
	Disabled bool
}

// SMTP delivers reset secrets by email. Port 465 uses implicit TLS; other
// ports upgrade with STARTTLS when the server offers it.
type SMTP struct {
	cfg Config
}

func New(cfg Config) *SMTP {
	return &SMTP{cfg: cfg}
}

// SendOTP mails the one-time code inline.
func (m *SMTP) SendOTP(to, otp string) error {
	text := fmt.Sprintf("Your password reset OTP is: %s\nThis OTP expires in 10 minutes. Do not share it with anyone.", otp)
	return m.send(to, "Password Reset OTP", text, otpHTML(otp))
}

// SendResetLink mails a URL embedding the reset token.
func (m *SMTP) SendResetLink(to, url string) error {
	text := fmt.Sprintf("Reset your password using this link: %s\nThe link expires in 60 minutes.", url)
	return m.send(to, "Password Reset Link", text, linkHTML(url))
}

func (m *SMTP) send(to, subject, textBody, htmlBody string) error {
	if m.cfg.Disabled {
		log.Printf("smtp disabled; mail to %s: %s", to, textBody)
		return nil
	}
	if m.cfg.Host == "" || m.cfg.Username == "" || m.cfg.Password == "" {
		return errors.New("smtp not configured")
	}

	fromAddr := m.cfg.From
	if fromAddr == "" {
		fromAddr = m.cfg.Username
	}
	fromHeader := fromAddr
	if m.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", m.cfg.FromName, fromAddr)
	}

	msg := buildMessage(fromHeader, fromAddr, to, subject, textBody, htmlBody)
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if m.cfg.Port == 465 {
		return m.sendTLS(addr, auth, fromAddr, to, msg)
	}

	c, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer c.Close()
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return err
		}
	}
	if err := c.Auth(auth); err != nil {
		return err
	}
	return submit(c, fromAddr, to, msg)
}

func (m *SMTP) sendTLS(addr string, auth smtp.Auth, from, to, msg string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}
	defer conn.Close()
	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Close()
	if err := c.Auth(auth); err != nil {
		return err
	}
	return submit(c, from, to, msg)
}

func submit(c *smtp.Client, from, to, msg string) error {
	if err := c.Mail(from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	wc, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// buildMessage assembles a multipart/alternative message with plain-text and
// HTML parts.
func buildMessage(fromHeader, fromAddr, to, subject, textBody, htmlBody string) string {
	boundary := fmt.Sprintf("reset-%d", time.Now().UnixNano())
	var sb strings.Builder
	sb.WriteString("From: " + fromHeader + "\r\n")
	sb.WriteString("Reply-To: " + fromAddr + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n")
	sb.WriteString("\r\n")
	sb.WriteString("--" + boundary + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(textBody + "\r\n")
	sb.WriteString("--" + boundary + "\r\n")
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody + "\r\n")
	sb.WriteString("--" + boundary + "--\r\n")
	return sb.String()
}

func otpHTML(otp string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#333;">
  <div style="max-width:600px;margin:0 auto;padding:20px;background:#f9f9f9;">
    <div style="background:#ffa500;padding:20px;text-align:center;">
      <h2 style="margin:0;color:#333;">Password Reset OTP</h2>
    </div>
    <div style="background:#fff;padding:30px;">
      <p>You have requested to reset your password. Use the following one-time password to verify your identity:</p>
      <div style="font-size:32px;font-weight:bold;text-align:center;letter-spacing:8px;padding:20px;background:#ffa500;font-family:'Courier New',monospace;">%s</div>
      <p style="background:#fff3cd;border:1px solid #ffc107;padding:15px;color:#856404;">This OTP will expire in 10 minutes. Do not share this code with anyone.</p>
      <p>If you did not request this password reset, please ignore this email and your password will remain unchanged.</p>
    </div>
  </div>
</body>
</html>`, otp)
}

func linkHTML(url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#333;">
  <div style="max-width:600px;margin:0 auto;padding:20px;background:#f9f9f9;">
    <div style="background:#ffa500;padding:20px;text-align:center;">
      <h2 style="margin:0;color:#333;">Password Reset</h2>
    </div>
    <div style="background:#fff;padding:30px;">
      <p>You have requested to reset your password. Click the link below to continue:</p>
      <p style="text-align:center;"><a href="%s" style="display:inline-block;padding:12px 24px;background:#ffa500;color:#333;text-decoration:none;font-weight:bold;">Reset Password</a></p>
      <p style="background:#fff3cd;border:1px solid #ffc107;padding:15px;color:#856404;">This link will expire in 60 minutes.</p>
      <p>If you did not request this password reset, please ignore this email and your password will remain unchanged.</p>
    </div>
  </div>
</body>
</html>`, url)
}

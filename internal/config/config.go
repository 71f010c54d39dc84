package config

import (
	"os"
	"strconv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port string

	StoreBackend string // postgres | mongo | memory
	PostgresDSN  string
	MongoURI     string
	MongoDB      string

	ResetMode     string // otp | token
	ResetLinkBase string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	SMTPFromName string
	SMTPDisabled bool
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "5000"),
		StoreBackend:  getenv("STORE_BACKEND", "postgres"),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "passwordreset"),
		ResetMode:     getenv("RESET_MODE", "otp"),
		ResetLinkBase: getenv("RESET_LINK_BASE", "http://localhost:3000"),
		SMTPHost:      getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getenvInt("SMTP_PORT", 587),
		SMTPUser:      getenv("SMTP_USER", ""),
		SMTPPass:      getenv("SMTP_PASS", ""),
		SMTPFrom:      getenv("SMTP_FROM", "noreply@example.com"),
		SMTPFromName:  getenv("SMTP_FROM_NAME", "Password Reset"),
		SMTPDisabled:  getenv("SMTP_DISABLED", "false") == "true",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

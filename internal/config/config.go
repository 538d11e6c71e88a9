// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// FallbackSecretKey is used when WIFIVAULT_SECRET_KEY is unset. It exists so
// the app can start in development; it is unsafe for production use and the
// composition root logs a warning when it is active.
const FallbackSecretKey = "default-key-change-in-production"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SecretKey  string
	ListenAddr string
	DBPath     string
	SessionTTL time.Duration
}

// UsingFallbackKey reports whether the insecure built-in encryption key is in
// use. The composition root uses this to warn at startup.
func (c *Config) UsingFallbackKey() bool {
	return c.SecretKey == FallbackSecretKey
}

// Load reads configuration from environment variables and returns a validated
// Config. WIFIVAULT_SECRET_KEY is the password-encryption passphrase; if
// unset, FallbackSecretKey is substituted. Optional variables with defaults:
// WIFIVAULT_LISTEN_ADDR (127.0.0.1:8080), WIFIVAULT_DB_PATH (wifivault.db),
// WIFIVAULT_SESSION_TTL (24h).
func Load() (*Config, error) {
	secretKey := os.Getenv("WIFIVAULT_SECRET_KEY")
	if secretKey == "" {
		secretKey = FallbackSecretKey
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("WIFIVAULT_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "wifivault.db"
	if v, ok := os.LookupEnv("WIFIVAULT_DB_PATH"); ok {
		dbPath = v
	}

	sessionTTL := 24 * time.Hour
	if v, ok := os.LookupEnv("WIFIVAULT_SESSION_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("WIFIVAULT_SESSION_TTL has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("WIFIVAULT_SESSION_TTL must be positive, got %q", v)
		}
		sessionTTL = parsed
	}

	return &Config{
		SecretKey:  secretKey,
		ListenAddr: listenAddr,
		DBPath:     dbPath,
		SessionTTL: sessionTTL,
	}, nil
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every WIFIVAULT_ env var that Load() reads.
var allConfigKeys = []string{
	"WIFIVAULT_SECRET_KEY",
	"WIFIVAULT_LISTEN_ADDR",
	"WIFIVAULT_DB_PATH",
	"WIFIVAULT_SESSION_TTL",
}

// isolateConfigEnv saves and unsets all WIFIVAULT_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("WIFIVAULT_SECRET_KEY", "a-real-secret")
	t.Setenv("WIFIVAULT_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("WIFIVAULT_DB_PATH", "/tmp/test.db")
	t.Setenv("WIFIVAULT_SESSION_TTL", "12h")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.SecretKey)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.UsingFallbackKey())
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, FallbackSecretKey, cfg.SecretKey)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "wifivault.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.UsingFallbackKey())
}

func TestLoad_InvalidSessionTTL(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("WIFIVAULT_SESSION_TTL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WIFIVAULT_SESSION_TTL")
}

func TestLoad_NonPositiveSessionTTL(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("WIFIVAULT_SESSION_TTL", "-5m")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

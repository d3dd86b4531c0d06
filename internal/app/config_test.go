package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 7*24*time.Hour, cfg.Invites.Expiry)
	require.Equal(t, 24, cfg.Invites.TokenLength)
	require.Equal(t, "Asia/Seoul", cfg.Export.Timezone)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWT.TTL)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	contents := []byte(`
server:
  port: 9090
  log_level: debug
auth:
  jwt:
    secret: test-secret
    access_token_ttl: 30m
invites:
  expiry: 24h
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), contents, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "test-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, 30*time.Minute, cfg.Auth.JWT.TTL)
	require.Equal(t, 24*time.Hour, cfg.Invites.Expiry)
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Error(t, cfg.Validate())

	cfg.Auth.JWT.Secret = "s3cret"
	require.NoError(t, cfg.Validate())
}

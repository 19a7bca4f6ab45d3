package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house31/internal/config"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	// Act
	cfg, err := config.LoadFrom("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.RateLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "v18.0", cfg.Facebook.Version)
	assert.Equal(t, 20, cfg.Facebook.Limit)
	assert.Equal(t, time.Duration(0), cfg.Sync.Interval)
	assert.Equal(t, ":3000", cfg.Server.Addr())
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	// Arrange
	path := writeYAML(t, `
server:
  port: 8080
log:
  level: debug
  format: text
storage:
  backend: badger
  dir: /tmp/house31
sync:
  interval: 15m
`)

	// Act
	cfg, err := config.LoadFrom(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, 15*time.Minute, cfg.Sync.Interval)
}

func TestLoadFrom_LegacyEnvOverridesFile(t *testing.T) {
	// Arrange
	path := writeYAML(t, "server:\n  port: 8080\n")
	t.Setenv("PORT", "9090")
	t.Setenv("FACEBOOK_PAGE_ID", "house31")
	t.Setenv("FACEBOOK_PAGE_ACCESS_TOKEN", "tok")
	t.Setenv("CRON_SECRET", "s3cret")
	t.Setenv("DATA_DIR", "/var/lib/house31")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("SYNC_INTERVAL", "1h")

	// Act
	cfg, err := config.LoadFrom(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "house31", cfg.Facebook.PageID)
	assert.Equal(t, "tok", cfg.Facebook.AccessToken)
	assert.Equal(t, "s3cret", cfg.Sync.CronSecret)
	assert.Equal(t, "/var/lib/house31", cfg.Storage.Dir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, time.Hour, cfg.Sync.Interval)
}

func TestLoadFrom_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"port out of range", "server:\n  port: 70000\n"},
		{"unknown backend", "storage:\n  backend: s3\n"},
		{"mongo without uri", "storage:\n  backend: mongo\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"post limit too high", "facebook:\n  limit: 500\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadFrom(writeYAML(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

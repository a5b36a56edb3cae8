package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SOCKCHAT_HOST", "chat.example.com")
	t.Setenv("SOCKCHAT_PORT", "8080")
	t.Setenv("SOCKCHAT_SCHEME", "https")
	t.Setenv("SOCKCHAT_USERNAME", "alice")
	t.Setenv("SOCKCHAT_TIMEOUT", "5s")
	t.Setenv("SOCKCHAT_VERBOSE", "2")
	t.Setenv("SOCKCHAT_NO_COLOR", "true")
	t.Setenv("SOCKCHAT_STATS", "1")

	cfg := New()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "chat.example.com", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https", cfg.Scheme)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.True(t, cfg.Stats)
}

func TestLoadFromEnv_UnsetKeepsDefaults(t *testing.T) {
	cfg := New()
	require.NoError(t, LoadFromEnv(cfg))
	assert.Equal(t, New(), cfg)
}

func TestLoadFromEnv_IgnoresCLIOnlyFields(t *testing.T) {
	t.Setenv("SOCKCHAT_YES", "true")
	t.Setenv("SOCKCHAT_ENVFILE", "/tmp/x")

	cfg := New()
	require.NoError(t, LoadFromEnv(cfg))
	assert.False(t, cfg.Yes)
	assert.Empty(t, cfg.EnvFile)
}

func TestLoadFromEnv_BadValue(t *testing.T) {
	t.Setenv("SOCKCHAT_PORT", "not-a-number")
	err := LoadFromEnv(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOCKCHAT_PORT")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.env")
	require.NoError(t, os.WriteFile(path, []byte("SOCKCHAT_HOST=from-file\nSOCKCHAT_PORT=4000\n"), 0o600))

	t.Setenv("SOCKCHAT_PORT", "5000") // already set: not overridden
	t.Setenv("SOCKCHAT_HOST", "")
	os.Unsetenv("SOCKCHAT_HOST")

	require.NoError(t, LoadDotEnv(path))
	cfg := New()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "from-file", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadDotEnv_MissingExplicitFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestLoadDotEnv_MissingDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	assert.NoError(t, LoadDotEnv(""))
}

func TestUsage(t *testing.T) {
	assert.Contains(t, Usage(), "SOCKCHAT_HOST")
}

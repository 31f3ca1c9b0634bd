package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "/auth/signin", cfg.SignInPath)
	assert.Equal(t, "/unauthorized", cfg.UnauthorizedPath)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.AIEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("UNAUTHORIZED_PATH", "/auth/signin")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.AIEnabled())
	assert.Equal(t, "/auth/signin", cfg.UnauthorizedPath)
}

func TestLoad_InvalidInt(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REDIS_DB", "three")

	_, err := Load()
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warning"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: ""}).SlogLevel())
}

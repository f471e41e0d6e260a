package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a production config file
		path := writeConfig(t, `
env: production
http-port: "8080"
strategy: heuristic
allowed-origins:
  - https://tictactoe.example.com
rate-limit:
  requests: 10
  window: 30s
redis:
  host: redis
  port: "6380"
`)

		// When: loading it
		conf, err := Load(path)

		// Then: file values and production defaults are combined
		require.NoError(t, err)
		assert.Equal(t, EnvProduction, conf.Env)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "heuristic", conf.Strategy)
		assert.Equal(t, []string{"https://tictactoe.example.com"}, conf.AllowedOrigins)
		assert.Equal(t, 10, conf.RateLimit.Requests)
		assert.Equal(t, 30*time.Second, conf.RateLimit.Window)
		assert.Equal(t, StorageRedis, conf.RateLimit.Storage)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Defaults for development", func(t *testing.T) {
		// Given: an almost empty file
		path := writeConfig(t, "env: development\n")

		// When: loading it
		conf, err := Load(path)

		// Then: development defaults apply
		require.NoError(t, err)
		assert.Equal(t, "5000", conf.HTTPPort)
		assert.Equal(t, "minimax", conf.Strategy)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.RateLimit.Storage)
		assert.Equal(t, 60, conf.RateLimit.Requests)
		assert.Equal(t, time.Minute, conf.RateLimit.Window)
		assert.False(t, conf.RateLimit.Disabled)
		assert.Contains(t, conf.AllowedOrigins, "http://localhost:5173")
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file and an env variable for the strategy
		path := writeConfig(t, "env: testing\nstrategy: minimax\n")
		t.Setenv("STRATEGY", "heuristic")

		// When: loading
		conf, err := Load(path)

		// Then: the env value wins
		require.NoError(t, err)
		assert.Equal(t, "heuristic", conf.Strategy)
		assert.Equal(t, "error", conf.LogLevel)
		assert.Equal(t, []string{"*"}, conf.AllowedOrigins)
	})

	t.Run("Missing file falls back to the environment", func(t *testing.T) {
		// Given: no file and the port in the environment
		t.Setenv("HTTP_PORT", "7000")

		// When: loading a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: env and defaults are used
		require.NoError(t, err)
		assert.Equal(t, "7000", conf.HTTPPort)
		assert.Equal(t, EnvDevelopment, conf.Env)
	})

	t.Run("Unknown environment", func(t *testing.T) {
		path := writeConfig(t, "env: staging\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrUnknownEnv)
	})

	t.Run("Unknown storage", func(t *testing.T) {
		path := writeConfig(t, "rate-limit:\n  storage: memcached\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrUnknownStorage)
	})

	t.Run("Unknown strategy", func(t *testing.T) {
		path := writeConfig(t, "strategy: random\n")

		_, err := Load(path)

		require.ErrorIs(t, err, apperror.ErrUnknownStrategy)
	})

	t.Run("Limit is ignored when limiting is off", func(t *testing.T) {
		path := writeConfig(t, "rate-limit:\n  disabled: true\n  requests: -1\n")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.True(t, conf.RateLimit.Disabled)
	})

	t.Run("Negative limit", func(t *testing.T) {
		path := writeConfig(t, "rate-limit:\n  requests: -1\n")

		_, err := Load(path)

		require.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("Broken yaml", func(t *testing.T) {
		path := writeConfig(t, "env: [\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(path) })
	})
}

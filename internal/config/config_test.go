package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Load default config when no config file is present", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("SERVER_PORT", "")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
		assert.True(t, cfg.Server.RateLimit.Enabled)

		assert.Equal(t, SourceFile, cfg.Data.Source)
		assert.Equal(t, "customers.json", cfg.Data.File)

		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Encoding)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)

		assert.False(t, cfg.RabbitMQ.Enabled)
		assert.Equal(t, "customer-directory", cfg.RabbitMQ.ExchangeName)
		assert.Equal(t, "@every 1m", cfg.Batch.StatsSchedule)
	})

	t.Run("PORT overrides the listening port", func(t *testing.T) {
		t.Setenv("PORT", "8081")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 8081, cfg.Server.Port)
	})

	t.Run("SERVER_PORT wins over PORT", func(t *testing.T) {
		t.Setenv("PORT", "8081")
		t.Setenv("SERVER_PORT", "9000")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Server.Port)
	})

	t.Run("Nested keys are read from the environment", func(t *testing.T) {
		t.Setenv("DATA_FILE", "/srv/seed.json")
		t.Setenv("LOGGER_LEVEL", "debug")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "/srv/seed.json", cfg.Data.File)
		assert.Equal(t, "debug", cfg.Logger.Level)
	})

	t.Run("Config file values override defaults", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte("server:\n  port: 4000\n  readTimeout: 5s\ndata:\n  source: postgres\ndatabase:\n  url: postgres://u:p@db:5432/customers\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, 4000, cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, SourcePostgres, cfg.Data.Source)
		assert.Equal(t, "postgres://u:p@db:5432/customers", cfg.Database.URL)
	})

	t.Run("Return error when config file is invalid", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server: : :\n\t- nope"), 0o644))

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("does-not-exist.yaml")
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.App.Addr)
	assert.Equal(t, DefaultDataSource, cfg.Data.Source)
	assert.Equal(t, DefaultMaxRows, cfg.Data.MaxRows)
	assert.Equal(t, 24*time.Hour, cfg.Covers.TTL)
	assert.Equal(t, DefaultPlaceholderURL, cfg.Covers.PlaceholderURL)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoad_YAMLWithEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SHELF_CSV", "/data/export.csv")

	p := filepath.Join(dir, "config.yaml")
	body := `
app:
  addr: ":9090"
  log_level: debug
data:
  source: ${SHELF_CSV}
  max_rows: 0
covers:
  ttl: 2h
  concurrency: 8
`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.App.Addr)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "/data/export.csv", cfg.Data.Source)
	assert.Equal(t, 0, cfg.Data.MaxRows)
	assert.Equal(t, 2*time.Hour, cfg.Covers.TTL)
	assert.Equal(t, 8, cfg.Covers.Concurrency)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultCatalogURL, cfg.Covers.CatalogURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("app:\n  addr: \":9090\"\n"), 0o644))

	t.Setenv("APP_ADDR", ":7070")
	t.Setenv("COVER_TTL", "30m")
	t.Setenv("DATA_MAX_ROWS", "50")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.App.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Covers.TTL)
	assert.Equal(t, 50, cfg.Data.MaxRows)
}

func TestLoad_EnvFileDoesNotOverrideExistingEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_DSN=from_file\n"), 0o644))

	t.Setenv("DB_DSN", "from_env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Database.DSN)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("COVER_TTL", "tomorrow")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "chatty")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("from_db without dsn", func(t *testing.T) {
		t.Setenv("DATA_FROM_DB", "true")
		_, err := Load("")
		assert.Error(t, err)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, 12000, cfg.MaxCatalogChars)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, 30*time.Second, cfg.CatalogTTL)
	assert.Equal(t, "learnhub.db", filepath.Base(cfg.DBPath))
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LEARNHUB_ENV", "Production")
	t.Setenv("LEARNHUB_DB", "/tmp/lh.db")
	t.Setenv("LEARNHUB_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("LEARNHUB_LOG_LEVEL", "DEBUG")
	t.Setenv("LEARNHUB_LOG_FILE", "/tmp/lh.log")
	t.Setenv("LEARNHUB_MAX_CATALOG_CHARS", "500")
	t.Setenv("LEARNHUB_CORS_ORIGINS", "https://learnhub.example")
	t.Setenv("LEARNHUB_CATALOG", "/srv/catalog.yaml")
	t.Setenv("LEARNHUB_CATALOG_TTL", "0s")

	cfg := LoadConfig()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/tmp/lh.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/lh.log", cfg.LogFile)
	assert.Equal(t, 500, cfg.MaxCatalogChars)
	assert.Equal(t, "https://learnhub.example", cfg.CORSOrigins)
	assert.Equal(t, "/srv/catalog.yaml", cfg.CatalogPath)
	assert.Zero(t, cfg.CatalogTTL)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("LEARNHUB_ENV", "staging")
	t.Setenv("LEARNHUB_MAX_CATALOG_CHARS", "-3")
	t.Setenv("LEARNHUB_CATALOG_TTL", "soon")

	cfg := LoadConfig()

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 12000, cfg.MaxCatalogChars)
	assert.Equal(t, 30*time.Second, cfg.CatalogTTL)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LEARNHUB_HTTP_ADDR=:7777\n"), 0o600))
	t.Setenv("LEARNHUB_ENV_FILE", path)
	t.Setenv("LEARNHUB_HTTP_ADDR", "")
	os.Unsetenv("LEARNHUB_HTTP_ADDR")

	require.NoError(t, LoadDotEnv())
	t.Cleanup(func() { os.Unsetenv("LEARNHUB_HTTP_ADDR") })

	assert.Equal(t, ":7777", LoadConfig().HTTPAddr)
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	t.Setenv("LEARNHUB_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, LoadDotEnv())
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment selects log encoding and other deployment-dependent defaults.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config holds process-wide settings. LLM settings live in llm.LLMConfig.
type Config struct {
	Env             Environment
	DBPath          string
	HTTPAddr        string
	LogLevel        string
	LogFile         string
	MaxCatalogChars int
	CORSOrigins     string
	// CatalogPath is an optional snapshot used when a request carries no courses.
	CatalogPath string
	// CatalogTTL is how long a loaded snapshot is reused. Zero rereads on
	// every request.
	CatalogTTL time.Duration
}

// DefaultConfig returns the settings used when no environment overrides exist.
func DefaultConfig() Config {
	return Config{
		Env:             EnvDevelopment,
		DBPath:          defaultDBPath(),
		HTTPAddr:        ":8000",
		LogLevel:        "info",
		MaxCatalogChars: 12000,
		CORSOrigins:     "*",
		CatalogTTL:      30 * time.Second,
	}
}

// LoadDotEnv loads LEARNHUB_ENV_FILE (default ".env") into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv() error {
	path := os.Getenv("LEARNHUB_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LEARNHUB_ENV"); v != "" {
		if env := Environment(strings.ToLower(v)); env == EnvProduction || env == EnvDevelopment {
			cfg.Env = env
		}
	}
	if v := os.Getenv("LEARNHUB_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LEARNHUB_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LEARNHUB_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LEARNHUB_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LEARNHUB_MAX_CATALOG_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxCatalogChars = n
		}
	}
	if v := os.Getenv("LEARNHUB_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = v
	}
	if v := os.Getenv("LEARNHUB_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("LEARNHUB_CATALOG_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.CatalogTTL = d
		}
	}
	return cfg
}

// IsProduction reports whether the production environment is selected.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "learnhub.db"
	}
	return filepath.Join(home, ".learnhub", "learnhub.db")
}

// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration values for the server and the client CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreDriver selects the server document store: file, sqlite, or
	// postgres. Defaults to "file".
	StoreDriver string

	// StorePath is the document location for the file and sqlite drivers.
	// Defaults to data/medidas.json (file) or data/medidas.db (sqlite).
	StorePath string

	// DatabaseURL is the Postgres connection string.
	// Required only when StoreDriver is "postgres".
	DatabaseURL string

	// ServerURL is the base URL the client CLI syncs against.
	// Defaults to "http://localhost:8080".
	ServerURL string

	// DataDir is where the client CLI keeps its local store.
	// Defaults to ~/.medidas.
	DataDir string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error when StoreDriver is unknown or a variable required by the
// selected driver is not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreDriver: getEnv("STORE_DRIVER", "file"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ServerURL:   getEnv("MEDIDAS_SERVER", "http://localhost:8080"),
		DataDir:     getEnv("MEDIDAS_DATA_DIR", defaultDataDir()),
	}

	switch cfg.StoreDriver {
	case "file":
		cfg.StorePath = getEnv("STORE_PATH", filepath.Join("data", "medidas.json"))
	case "sqlite":
		cfg.StorePath = getEnv("STORE_PATH", filepath.Join("data", "medidas.db"))
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("required environment variables not set: DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q (want file, sqlite, or postgres)", cfg.StoreDriver)
	}

	return cfg, nil
}

// LocalStorePath returns the path of the client CLI's local database.
func (c Config) LocalStorePath() string {
	return filepath.Join(c.DataDir, "medidas.db")
}

// defaultDataDir places the client store under the user's home directory,
// falling back to a relative directory when home cannot be resolved.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".medidas"
	}
	return filepath.Join(home, ".medidas")
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

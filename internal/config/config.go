package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Reconciliation modes accepted by RECONCILE_MODE.
const (
	ReconcileStrict  = "strict"
	ReconcileLenient = "lenient"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Catalog  CatalogConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings. When URL is empty
// the application falls back to a local sqlite file at SQLitePath.
type DatabaseConfig struct {
	URL             string
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level string
}

// CatalogConfig tunes the catalog service behavior.
type CatalogConfig struct {
	ReconcileMode string
}

// Lenient reports whether the legacy skip-unknown-rows reconciliation
// behavior was requested.
func (c CatalogConfig) Lenient() bool {
	return c.ReconcileMode == ReconcileLenient
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		SQLitePath:      firstNonEmpty(os.Getenv("SQLITE_PATH"), "primecost.db"),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DB_MAX_IDLE_CONNS"), 2),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DB_MAX_OPEN_CONNS"), 10),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DB_CONN_MAX_LIFETIME"), time.Hour),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DB_CONN_MAX_IDLE_TIME"), 30*time.Minute),
	}

	cfg.Log = LogConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	mode := strings.ToLower(strings.TrimSpace(firstNonEmpty(os.Getenv("RECONCILE_MODE"), ReconcileStrict)))
	if mode != ReconcileStrict && mode != ReconcileLenient {
		return Config{}, fmt.Errorf("unknown reconcile mode: %s", mode)
	}
	cfg.Catalog = CatalogConfig{ReconcileMode: mode}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := time.ParseDuration(trimmed)
	if err != nil {
		return def
	}
	return parsed
}

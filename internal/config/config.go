// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	DBPath string

	// Logging
	LogLevel  string
	LogFormat string

	// Trip defaults, applied when a CreateTrip request leaves them out.
	DefaultBaseCurrency        string
	DefaultRoundingGranularity int64
	DefaultWeight              decimal.Decimal

	// ChildWeight is the weight given to members joining as children.
	ChildWeight decimal.Decimal

	MetricsEnabled bool
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "./data/trips.db"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DefaultBaseCurrency:        strings.ToUpper(getEnv("DEFAULT_BASE_CURRENCY", "VND")),
		DefaultRoundingGranularity: getEnvInt64("DEFAULT_ROUNDING_GRANULARITY", 100000),
		DefaultWeight:              getEnvDecimal("DEFAULT_WEIGHT", decimal.NewFromInt(1)),
		ChildWeight:                getEnvDecimal("CHILD_WEIGHT", decimal.RequireFromString("0.5")),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
			}
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(c.DefaultBaseCurrency) != 3 {
		errors = append(errors, fmt.Sprintf("invalid default base currency '%s': must be a 3-letter code", c.DefaultBaseCurrency))
	}

	if c.DefaultRoundingGranularity < 1 {
		errors = append(errors, fmt.Sprintf("invalid rounding granularity %d: must be at least 1", c.DefaultRoundingGranularity))
	}

	if !c.DefaultWeight.IsPositive() {
		errors = append(errors, fmt.Sprintf("invalid default weight %s: must be positive", c.DefaultWeight))
	}
	if !c.ChildWeight.IsPositive() {
		errors = append(errors, fmt.Sprintf("invalid child weight %s: must be positive", c.ChildWeight))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

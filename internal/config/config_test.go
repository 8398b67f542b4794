package config

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) Config {
	return Config{
		Port:                       "8080",
		DBPath:                     filepath.Join(t.TempDir(), "trips.db"),
		LogLevel:                   "info",
		LogFormat:                  "text",
		DefaultBaseCurrency:        "VND",
		DefaultRoundingGranularity: 100000,
		DefaultWeight:              decimal.NewFromInt(1),
		ChildWeight:                decimal.RequireFromString("0.5"),
		MetricsEnabled:             true,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty database path",
			mutate:      func(c *Config) { c.DBPath = "" },
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name:        "unknown log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "zero granularity",
			mutate:      func(c *Config) { c.DefaultRoundingGranularity = 0 },
			wantErr:     true,
			errorString: "invalid rounding granularity 0",
		},
		{
			name:        "negative child weight",
			mutate:      func(c *Config) { c.ChildWeight = decimal.NewFromInt(-1) },
			wantErr:     true,
			errorString: "invalid child weight -1",
		},
		{
			name:        "bad currency code",
			mutate:      func(c *Config) { c.DefaultBaseCurrency = "EURO" },
			wantErr:     true,
			errorString: "invalid default base currency 'EURO'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Port = "0"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 0")
	assert.Contains(t, err.Error(), "invalid log level 'loud'")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "DB_PATH", "DEFAULT_BASE_CURRENCY", "DEFAULT_ROUNDING_GRANULARITY", "CHILD_WEIGHT", "METRICS_ENABLED"} {
			t.Setenv(key, "")
		}

		cfg := Load()
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "./data/trips.db", cfg.DBPath)
		assert.Equal(t, "VND", cfg.DefaultBaseCurrency)
		assert.Equal(t, int64(100000), cfg.DefaultRoundingGranularity)
		assert.True(t, cfg.ChildWeight.Equal(decimal.RequireFromString("0.5")))
		assert.True(t, cfg.MetricsEnabled)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DEFAULT_BASE_CURRENCY", "eur")
		t.Setenv("DEFAULT_ROUNDING_GRANULARITY", "5")
		t.Setenv("CHILD_WEIGHT", "0.25")
		t.Setenv("METRICS_ENABLED", "false")

		cfg := Load()
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "EUR", cfg.DefaultBaseCurrency)
		assert.Equal(t, int64(5), cfg.DefaultRoundingGranularity)
		assert.True(t, cfg.ChildWeight.Equal(decimal.RequireFromString("0.25")))
		assert.False(t, cfg.MetricsEnabled)
	})

	t.Run("malformed values fall back to defaults", func(t *testing.T) {
		t.Setenv("DEFAULT_ROUNDING_GRANULARITY", "lots")
		t.Setenv("CHILD_WEIGHT", "half")

		cfg := Load()
		assert.Equal(t, int64(100000), cfg.DefaultRoundingGranularity)
		assert.True(t, cfg.ChildWeight.Equal(decimal.RequireFromString("0.5")))
	})
}

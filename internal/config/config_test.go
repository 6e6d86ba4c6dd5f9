package config

import (
	"testing"

	"gobenford/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "GIN_MODE", "DATABASE_DRIVER", "DATABASE_URL",
		"KS_UNIFORM_MIN", "KS_UNIFORM_MAX", "SIGNIFICANCE_LEVEL",
		"MAX_CONCURRENT_COLUMNS", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "benford.db", cfg.Database.URL)
	assert.Equal(t, 1.0, cfg.Analysis.KSUniformMin)
	assert.Equal(t, 9.0, cfg.Analysis.KSUniformMax)
	assert.Equal(t, 0.05, cfg.Analysis.SignificanceLevel)
	assert.Equal(t, 4, cfg.Analysis.MaxConcurrentColumns)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/benford")
	t.Setenv("KS_UNIFORM_MAX", "10")
	t.Setenv("SIGNIFICANCE_LEVEL", "0.01")
	t.Setenv("MAX_CONCURRENT_COLUMNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 10.0, cfg.Analysis.KSUniformMax)
	assert.Equal(t, 0.01, cfg.Analysis.SignificanceLevel)
	assert.Equal(t, 4, cfg.Analysis.MaxConcurrentColumns, "unparsable values fall back to the default")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"unknown driver":        {"DATABASE_DRIVER", "mysql"},
		"inverted KS reference": {"KS_UNIFORM_MIN", "12"},
		"alpha out of range":    {"SIGNIFICANCE_LEVEL", "1.5"},
		"no workers":            {"MAX_CONCURRENT_COLUMNS", "0"},
	}

	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

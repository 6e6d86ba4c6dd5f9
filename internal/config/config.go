package config

import (
	"os"
	"strconv"
	"strings"

	"gobenford/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analysis AnalysisConfig
	Logging  LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the run history store settings
type DatabaseConfig struct {
	Driver string
	URL    string
}

// AnalysisConfig holds the statistical test settings
type AnalysisConfig struct {
	KSUniformMin         float64
	KSUniformMax         float64
	SignificanceLevel    float64
	MaxConcurrentColumns int
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level string
}

// Supported history store drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Database: *loadDatabaseConfig(),
		Analysis: *loadAnalysisConfig(),
		Logging:  *loadLoggingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Driver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
		URL:    getEnvOrDefault("DATABASE_URL", "benford.db"),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		KSUniformMin:         getEnvFloatOrDefault("KS_UNIFORM_MIN", 1),
		KSUniformMax:         getEnvFloatOrDefault("KS_UNIFORM_MAX", 9),
		SignificanceLevel:    getEnvFloatOrDefault("SIGNIFICANCE_LEVEL", 0.05),
		MaxConcurrentColumns: getEnvIntOrDefault("MAX_CONCURRENT_COLUMNS", 4),
	}
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
}

func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return errors.ConfigInvalid("DATABASE_DRIVER must be sqlite3 or postgres")
	}
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Analysis.KSUniformMin >= config.Analysis.KSUniformMax {
		return errors.ConfigInvalid("KS_UNIFORM_MIN must be less than KS_UNIFORM_MAX")
	}
	if config.Analysis.SignificanceLevel <= 0 || config.Analysis.SignificanceLevel >= 1 {
		return errors.ConfigInvalid("SIGNIFICANCE_LEVEL must be between 0 and 1")
	}
	if config.Analysis.MaxConcurrentColumns < 1 {
		return errors.ConfigInvalid("MAX_CONCURRENT_COLUMNS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	App        AppConfig
	Metrics    MetricsConfig
	Migrations MigrationConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

type MigrationConfig struct {
	Path    string // file:// source for golang-migrate
	OnStart bool   // apply pending migrations before serving
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Migrations: MigrationConfig{
			Path:    getEnv("MIGRATIONS_PATH", "file://migrations"),
			OnStart: getEnvBool("MIGRATE_ON_START", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.App.Port); err != nil {
		return fmt.Errorf("APP_PORT must be numeric (got %q)", c.App.Port)
	}

	switch c.App.Environment {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("APP_ENV must be one of development, staging, production, test (got %q)", c.App.Environment)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/' (got %q)", c.Metrics.Path)
	}

	if c.Migrations.OnStart && c.Migrations.Path == "" {
		return fmt.Errorf("MIGRATIONS_PATH must be set when MIGRATE_ON_START is enabled")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

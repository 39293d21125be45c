// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"my-money/internal/util"
	"my-money/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort  string
	DB          db.Config
	Log         util.LogConfig
	DisplayName string // Shown on reports and used for the default session
	Currency    string // ISO code used to format amounts
}

// getEnv returns the environment variable or fallback when unset.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	driver := getEnv("DB_DRIVER", db.DriverPostgres)
	if driver != db.DriverPostgres && driver != db.DriverSQLite {
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want %q or %q", driver, db.DriverPostgres, db.DriverSQLite)
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	return &AppConfig{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DB: db.Config{
			Driver:   driver,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "moneydb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "./data/money.db"),
		},
		Log: util.LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		DisplayName: getEnv("APP_DISPLAY_NAME", "Owner"),
		Currency:    getEnv("APP_CURRENCY", "IDR"),
	}, nil
}

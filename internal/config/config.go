package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DBPath string

	// Bootstrap admin, created on first run when no admin exists
	AdminUsername string
	AdminPassword string

	// Display
	Currency string

	// Login throttling
	LoginRatePerMinute int
	LoginBurst         int

	Env string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:             getEnv("CASHFLOW_DB_PATH", "./data/cashflow.db"),
		AdminUsername:      getEnv("CASHFLOW_ADMIN_USERNAME", "admin"),
		AdminPassword:      getEnv("CASHFLOW_ADMIN_PASSWORD", "admin123"),
		Currency:           getEnv("CASHFLOW_CURRENCY", "USD"),
		LoginRatePerMinute: getEnvInt("CASHFLOW_LOGIN_RATE", 10),
		LoginBurst:         getEnvInt("CASHFLOW_LOGIN_BURST", 5),
		Env:                getEnv("ENV", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("CASHFLOW_DB_PATH is required")
	}
	if c.AdminUsername == "" {
		return fmt.Errorf("CASHFLOW_ADMIN_USERNAME is required")
	}
	if len(c.AdminPassword) < 6 {
		return fmt.Errorf("CASHFLOW_ADMIN_PASSWORD must be at least 6 characters")
	}
	if c.LoginRatePerMinute < 1 {
		return fmt.Errorf("CASHFLOW_LOGIN_RATE must be positive")
	}
	if c.LoginBurst < 1 {
		return fmt.Errorf("CASHFLOW_LOGIN_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env       string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Detection DetectionConfig
	Jobs      JobsConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Quiet    bool
}

// DetectionConfig holds settings for AI-assisted disease detection
type DetectionConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

// JobsConfig holds background job settings
type JobsConfig struct {
	OfflineAfter time.Duration
	SweepSpec    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3210"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "rangbot"),
			Quiet:    getEnv("DB_QUIET", "false") == "true",
		},
		Detection: DetectionConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Jobs: JobsConfig{
			OfflineAfter: getDurationEnv("DEVICE_OFFLINE_AFTER", 30*time.Minute),
			SweepSpec:    getEnv("DEVICE_SWEEP_SPEC", "@every 5m"),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv parses a duration env var, accepting plain minute counts too
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if mins, err := strconv.Atoi(value); err == nil {
		return time.Duration(mins) * time.Minute
	}
	return defaultValue
}

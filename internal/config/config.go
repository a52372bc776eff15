package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the public Fluxpoint API endpoint
const DefaultBaseURL = "https://api.fluxpoint.dev"

// Config holds all configuration for the application
type Config struct {
	API      APIConfig
	Workers  WorkerConfig
	LogLevel string
}

// APIConfig holds API-related configuration
type APIConfig struct {
	Token   string
	BaseURL string
	Timeout int // request timeout in seconds
}

// WorkerConfig holds configuration of the background executor used for queued calls
type WorkerConfig struct {
	Count     int
	QueueSize int // 0 = twice the worker count
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			Token:   getEnv("FLUXPOINT_TOKEN", ""),
			BaseURL: getEnv("FLUXPOINT_BASE_URL", DefaultBaseURL),
			Timeout: getEnvAsInt("FLUXPOINT_TIMEOUT", 30),
		},
		Workers: WorkerConfig{
			Count:     getEnvAsInt("FLUXPOINT_WORKERS", 4),
			QueueSize: getEnvAsInt("FLUXPOINT_QUEUE_SIZE", 0),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// TimeoutDuration returns the request timeout, falling back to 30s for non-positive values
func (c APIConfig) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

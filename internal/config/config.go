// Package config provides configuration for the chat sync sidecar.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the sidecar configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Remote message service
	MessageAPIURL  string
	GatewayTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8085),
		MessageAPIURL:  getEnv("MESSAGE_API_URL", "http://localhost:8000/api/v1"),
		GatewayTimeout: time.Duration(getEnvInt("GATEWAY_TIMEOUT_MS", 15000)) * time.Millisecond,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

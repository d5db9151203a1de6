// Package config loads gateway configuration from environment variables, with
// an optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all gateway configuration.
type Config struct {
	ListenAddr      string // HTTP listen address
	EngineURL       string // base URL of the backtest engine
	RequestTimeout  int    // engine request timeout, seconds
	RequestsPerSec  int    // engine rate limit
	MaxRetrySeconds int    // backoff budget for engine retries
	LogLevel        string // zerolog level name
}

// Load initializes configuration from environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	return &Config{
		ListenAddr:      getEnvWithDefault("LISTEN_ADDR", ":8080"),
		EngineURL:       getEnvWithDefault("ENGINE_URL", "http://localhost:8000"),
		RequestTimeout:  getEnvIntWithDefault("REQUEST_TIMEOUT", 60),
		RequestsPerSec:  getEnvIntWithDefault("REQUESTS_PER_SEC", 5),
		MaxRetrySeconds: getEnvIntWithDefault("MAX_RETRY_SECONDS", 30),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer in environment, using default")
		return defaultValue
	}
	return n
}

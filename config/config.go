// Package config loads the stacker configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the application configuration.
type Config struct {
	User      string // default user of the CLI
	Store     string // storage backend: file, sqlite or redis
	Data      string // folder of the file backend, database file of sqlite
	RedisAddr string

	Addr      string  // HTTP listen address
	JWTSecret string  // HS256 secret, no authentication when empty
	Rate      float64 // HTTP requests per second, 0 for no limit

	Model         string        // Gemini model, empty for the default one
	QuoteURL      string        // JSON price API, quotes come from Gemini when empty
	QuotePath     string        // JSONPath of the price in QuoteURL responses
	QuoteTTL      time.Duration // how long a quote is fresh
	QuoteInterval time.Duration // minimum interval between upstream quote calls

	LogLevel string
}

// Load reads the configuration from environment variables, after loading a
// .env file when there is one.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		User:          getEnv("STACKER_USER", "guest"),
		Store:         getEnv("STACKER_STORE", "file"),
		Data:          getEnv("STACKER_DATA", ".stacker"),
		RedisAddr:     getEnv("STACKER_REDIS_ADDR", "localhost:6379"),
		Addr:          getEnv("STACKER_ADDR", ":8080"),
		JWTSecret:     getEnv("STACKER_JWT_SECRET", ""),
		Rate:          getEnvFloat("STACKER_RATE", 10),
		Model:         getEnv("STACKER_MODEL", ""),
		QuoteURL:      getEnv("STACKER_QUOTE_URL", ""),
		QuotePath:     getEnv("STACKER_QUOTE_PATH", "$.price"),
		QuoteTTL:      getEnvDuration("STACKER_QUOTE_TTL", 10*time.Minute),
		QuoteInterval: getEnvDuration("STACKER_QUOTE_INTERVAL", 30*time.Second),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// NewLogger returns a text logger at level, info when level is invalid.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)
	return logger
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvFloat returns the environment variable as float or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration returns the environment variable as a duration or a default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	// HTTPAddr is the listen address for the API server.
	HTTPAddr string
	// InterestEnabled turns the in-process interest scheduler on.
	InterestEnabled bool
	// InterestSchedule is the cron expression for the monthly interest run.
	InterestSchedule string
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string
	// CORSAllowedOrigins lists the origins granted cross-origin access.
	CORSAllowedOrigins []string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present. Missing variables fall back to sensible defaults.
func Load(log *logrus.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment as-is")
	}

	cfg := &Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		InterestEnabled:    getBool(log, "INTEREST_ENABLED", true),
		InterestSchedule:   getEnv("INTEREST_SCHEDULE", "0 0 1 * *"), // midnight on the 1st
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Invalid LOG_LEVEL, keeping default")
	} else {
		log.SetLevel(level)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(log *logrus.Logger, key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.WithField("key", key).Warnf("Invalid boolean %q, using %v", v, fallback)
		return fallback
	}
	return b
}

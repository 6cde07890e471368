package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	AppEnv          string
	BaseURL         string
	DefaultValidity time.Duration
	SweepInterval   time.Duration
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", "file:shortlink.db"),
		AppEnv:          getEnv("APP_ENV", "local"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		DefaultValidity: time.Duration(getEnvInt("DEFAULT_VALIDITY_MINUTES", 30)) * time.Minute,
		SweepInterval:   getEnvDuration("SWEEP_INTERVAL", 60*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

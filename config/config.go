// Package config reads process configuration from the environment, with a
// .env file loaded first when one exists.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration.
type Config struct {
	// Target site
	BaseURL   string
	UserAgent string

	// Page acquisition
	Headless   bool
	NavTimeout time.Duration
	MaxRetries int

	// API server
	ListenAddr string

	// Batch / storage
	DatabaseURL string
	CSVFilePath string
	Workers     int
}

// Load reads configuration from environment variables, falling back to
// defaults. A .env file in the working directory is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:     getEnv("BASE_URL", "https://www.booking.com"),
		UserAgent:   getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		Headless:    getEnvBool("HEADLESS", true),
		NavTimeout:  time.Duration(getEnvInt("NAV_TIMEOUT_MS", 60000)) * time.Millisecond,
		MaxRetries:  getEnvInt("MAX_RETRIES", 3),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CSVFilePath: getEnv("CSV_FILE_PATH", "output/hotels.csv"),
		Workers:     getEnvInt("WORKERS", 2),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

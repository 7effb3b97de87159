// Package config reads server settings from the environment (and a .env
// file in development).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds server settings.
type Config struct {
	Port         string
	LogLevel     zerolog.Level
	WordsFile    string // JSON word list; empty means the embedded default
	DBPath       string
	DailySalt    string
	JWTSecret    string
	ClientOrigin []string
	SessionTTL   time.Duration
	Production   bool
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "5175"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		DBPath:       getEnv("DB_PATH", "./data/wordle.db"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		ClientOrigin: splitList(getEnv("CLIENT_ORIGIN", "http://localhost:5173")),
		Production:   os.Getenv("APP_ENV") == "production",
	}

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = lvl

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric: %q", cfg.Port)
	}
	if cfg.Production && cfg.JWTSecret == "dev_secret_change_me" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}
	return cfg, nil
}

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Port }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

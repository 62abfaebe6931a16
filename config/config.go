package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the application. Values come from
// environment variables; secrets (DB password, API key, JWT secret) have no
// defaults and must be provided.
type Config struct {
	// Server configuration
	ServerHost string `env:"SERVER_HOST" env-default:"0.0.0.0"`
	ServerPort string `env:"SERVER_PORT" env-default:"8080"`

	// Database configuration
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" env-default:"kondate"`
	DBSSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`

	// Redis configuration
	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	// JWT configuration
	JWTSecret string `env:"JWT_SECRET"`

	// LLM provider configuration
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" env-default:""`
	OpenAIModel   string `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`

	// Rate limit policies for the propose route
	BurstLimit        int           `env:"RATE_LIMIT_BURST" env-default:"5"`
	BurstWindow       time.Duration `env:"RATE_LIMIT_BURST_WINDOW" env-default:"60s"`
	DailyQuota        int           `env:"RATE_LIMIT_DAILY" env-default:"10"`
	DailyQuotaWindow  time.Duration `env:"RATE_LIMIT_DAILY_WINDOW" env-default:"24h"`
	HistoryTitleCount int           `env:"HISTORY_TITLE_COUNT" env-default:"10"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	return &cfg, nil
}

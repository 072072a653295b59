// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	// Telegram settings
	TelegramBotToken string
	ChannelID        string

	// LLM settings
	OpenAIAPIKey       string
	GeminiAPIKey       string
	MaxOpenAIRequests  int // per day, 0 = unlimited
	MaxGeminiRequests  int
	MaxTotalAIRequests int
	PromptTokenBudget  int // max tokens of article content in the prompt

	// Storage
	CacheDir      string
	StatePath     string
	DatabaseURL   string // optional Postgres ledger
	RetentionDays int

	// Feeds
	SourcesConfigPath string
	MaxArticleAge     time.Duration

	// Composer
	CaptionMaxRunes int

	// Images
	EnableImages bool

	// App settings
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		SourcesConfigPath:  "configs/sources.yaml",
		MaxOpenAIRequests:  30,
		MaxGeminiRequests:  30,
		MaxTotalAIRequests: 50,
		PromptTokenBudget:  1600,
		RetentionDays:      14,
		MaxArticleAge:      72 * time.Hour,
		CaptionMaxRunes:    1024,
		EnableImages:       true,
		RequestTimeout:     30 * time.Second,
		RetryAttempts:      3,
		RetryDelay:         2 * time.Second,
	}

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.ChannelID = os.Getenv("CHANNEL_ID")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.CacheDir = getEnvOrDefault("CACHE_DIR", "cache")
	cfg.StatePath = filepath.Join(cfg.CacheDir, "state.json")

	if path := os.Getenv("SOURCES_CONFIG_PATH"); path != "" {
		cfg.SourcesConfigPath = path
	}

	cfg.RetentionDays = getEnvIntOrDefault("RETENTION_DAYS", cfg.RetentionDays)
	if v := getEnvIntOrDefault("MAX_ARTICLE_AGE_HOURS", 0); v > 0 {
		cfg.MaxArticleAge = time.Duration(v) * time.Hour
	}

	cfg.MaxOpenAIRequests = getEnvIntOrDefault("MAX_OPENAI_REQUESTS", cfg.MaxOpenAIRequests)
	cfg.MaxGeminiRequests = getEnvIntOrDefault("MAX_GEMINI_REQUESTS", cfg.MaxGeminiRequests)
	cfg.MaxTotalAIRequests = getEnvIntOrDefault("MAX_TOTAL_AI_REQUESTS", cfg.MaxTotalAIRequests)
	cfg.PromptTokenBudget = getEnvIntOrDefault("PROMPT_TOKEN_BUDGET", cfg.PromptTokenBudget)

	if v := os.Getenv("CAPTION_MAX_RUNES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 200 && val <= 1024 {
			cfg.CaptionMaxRunes = val
		}
	}

	if v := os.Getenv("ENABLE_IMAGES"); v == "false" {
		cfg.EnableImages = false
	}

	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)
	if v := getEnvIntOrDefault("RETRY_DELAY_SECONDS", 0); v > 0 {
		cfg.RetryDelay = time.Duration(v) * time.Second
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.ChannelID == "" {
		return fmt.Errorf("CHANNEL_ID is required")
	}
	if c.OpenAIAPIKey == "" && c.GeminiAPIKey == "" {
		return fmt.Errorf("at least one of OPENAI_API_KEY or GEMINI_API_KEY is required")
	}
	if c.RetentionDays <= 0 {
		return fmt.Errorf("RETENTION_DAYS must be positive")
	}
	return nil
}

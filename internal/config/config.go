package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Mongo settings
	MongoURI string

	// Telegram settings
	TelegramToken   string
	TelegramChannel string

	// Translation settings
	TargetLang        string
	GeminiAPIKey      string // optional fallback provider
	OpenAIAPIKey      string // optional fallback provider
	MaxGeminiRequests int    // daily budget (0 = disabled)
	MaxOpenAIRequests int    // daily budget (0 = disabled)

	// Source settings
	SourceConfigPath string

	// App settings
	Debug          bool
	SyncInterval   time.Duration
	SendSpacing    time.Duration
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		TargetLang:       "gu",
		SourceConfigPath: "configs/source.yaml",
		SyncInterval:     300 * time.Second,
		SendSpacing:      3 * time.Second,
		RequestTimeout:   30 * time.Second,
		RetryAttempts:    3,
		RetryDelay:       2 * time.Second,
	}

	// Load from environment
	cfg.MongoURI = os.Getenv("MONGO_CONNECTION_STRING")
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChannel = os.Getenv("TELEGRAM_CHANNEL_USERNAME")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	cfg.TargetLang = getEnvOrDefault("TARGET_LANG", cfg.TargetLang)
	cfg.SourceConfigPath = getEnvOrDefault("SOURCE_CONFIG_PATH", cfg.SourceConfigPath)
	cfg.MaxGeminiRequests = getEnvIntOrDefault("MAX_GEMINI_REQUESTS", 50)
	cfg.MaxOpenAIRequests = getEnvIntOrDefault("MAX_OPENAI_REQUESTS", 50)

	if v := getEnvIntOrDefault("SYNC_INTERVAL_SECONDS", 0); v > 0 {
		cfg.SyncInterval = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("SEND_SPACING_SECONDS", 0); v > 0 {
		cfg.SendSpacing = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("RETRY_ATTEMPTS", 0); v > 0 {
		cfg.RetryAttempts = v
	}
	if v := getEnvIntOrDefault("RETRY_DELAY_SECONDS", 0); v > 0 {
		cfg.RetryDelay = time.Duration(v) * time.Second
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
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

// Validate fails fast at startup so a misconfigured process never reaches
// the middle of a sync cycle.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_CONNECTION_STRING is required")
	}
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.TelegramChannel == "" {
		return fmt.Errorf("TELEGRAM_CHANNEL_USERNAME is required")
	}
	return nil
}

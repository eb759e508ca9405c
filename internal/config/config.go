package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"cryptoinsight/internal/fetcher"
)

// Config holds all configuration for the crypto insight agent.
type Config struct {
	// Credential for the completion service
	OpenAIAPIKey string `mapstructure:"openai_api_key"`

	// Completion service settings
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	OpenAIModel   string `mapstructure:"openai_model"`

	// Market-data service settings (configurable for testing)
	CoinGeckoBaseURL string `mapstructure:"coingecko_base_url"`

	// Per-run deadline covering both upstream calls
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds"`
}

// RequestTimeout returns the per-run deadline as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - OPENAI_API_KEY (required; absence aborts before any network call)
//   - OPENAI_BASE_URL (optional, defaults to production)
//   - OPENAI_MODEL (optional)
//   - COINGECKO_BASE_URL (optional, defaults to production)
//   - REQUEST_TIMEOUT_SECONDS (optional)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("openai_model", "gpt-3.5-turbo")
	v.SetDefault("coingecko_base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("request_timeout_seconds", 30)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.cryptoinsight")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	v.BindEnv("openai_base_url", "OPENAI_BASE_URL")
	v.BindEnv("openai_model", "OPENAI_MODEL")
	v.BindEnv("coingecko_base_url", "COINGECKO_BASE_URL")
	v.BindEnv("request_timeout_seconds", "REQUEST_TIMEOUT_SECONDS")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The credential is the one hard requirement; everything else has a default
	if config.OpenAIAPIKey == "" {
		return nil, fetcher.NewMissingCredentialError("OPENAI_API_KEY")
	}

	if config.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("request_timeout_seconds must be positive, got %d", config.RequestTimeoutSeconds)
	}

	return config, nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	LLM     LLMConfig
	Search  SearchConfig
	Cache   CacheConfig
	Summary SummaryConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

// GatewayConfig holds chat platform gateway configuration
type GatewayConfig struct {
	Token   string `mapstructure:"token"`
	BaseURL string `mapstructure:"base_url"`
}

// LLMConfig holds completion endpoint configuration
type LLMConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// SearchConfig holds shopping search endpoint configuration
type SearchConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Region  string `mapstructure:"region"`
	Locale  string `mapstructure:"locale"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" or "disabled"
	TTL  time.Duration `mapstructure:"ttl"`
}

// SummaryConfig holds summarization configuration
type SummaryConfig struct {
	MaxMessages int `mapstructure:"max_messages"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/chatlens/")

	// Environment variable settings
	v.SetEnvPrefix("CHATLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Secrets default to empty so
// their environment variables bind even without a config file.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")

	// Gateway defaults
	v.SetDefault("gateway.token", "")
	v.SetDefault("gateway.base_url", "https://discord.com/api/v10")

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_tokens", 800)

	// Search defaults
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.base_url", "https://google.serper.dev")
	v.SetDefault("search.region", "us")
	v.SetDefault("search.locale", "en")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "30m") // product prices go stale within the hour

	// Summary defaults
	v.SetDefault("summary.max_messages", 200)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Gateway.Token == "" {
		return fmt.Errorf("gateway token is required (set CHATLENS_GATEWAY_TOKEN)")
	}

	if config.Search.APIKey == "" {
		return fmt.Errorf("search API key is required (set CHATLENS_SEARCH_API_KEY)")
	}

	if config.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key is required (set CHATLENS_LLM_API_KEY)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "disabled" {
		return fmt.Errorf("cache type must be 'memory' or 'disabled', got: %s", config.Cache.Type)
	}

	return nil
}

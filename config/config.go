package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	PriceFeed PriceFeedConfig
	Cache     CacheConfig
	Scoring   ScoringConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PriceFeedConfig holds the external price aggregation feed configuration
type PriceFeedConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	RequestsPerHour int    `mapstructure:"requests_per_hour"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ScoringConfig holds scoring engine configuration
type ScoringConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/supplens/")

	v.SetEnvPrefix("SUPPLENS")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover the rest.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("pricefeed.base_url", "https://feed.supplens.jp")
	v.SetDefault("pricefeed.requests_per_hour", 1000)

	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("scoring.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.PriceFeed.APIKey == "" {
		return fmt.Errorf("price feed API key is required (set SUPPLENS_PRICEFEED_API_KEY)")
	}

	if config.PriceFeed.RequestsPerHour <= 0 {
		return fmt.Errorf("pricefeed.requests_per_hour must be positive, got: %d", config.PriceFeed.RequestsPerHour)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got: %s", config.Cache.TTL)
	}

	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Providers ProvidersConfig
	Pipeline  PipelineConfig
	Cache     CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProvidersConfig holds search provider credentials and limits. A provider
// with an empty key is simply not registered.
type ProvidersConfig struct {
	SerpAPIKey   string `mapstructure:"serpapi_key"`
	BraveAPIKey  string `mapstructure:"brave_key"`
	TavilyAPIKey string `mapstructure:"tavily_key"`
	MaxResults   int    `mapstructure:"max_results"`
}

// PipelineConfig holds pipeline tuning knobs
type PipelineConfig struct {
	PrioritySource     string             `mapstructure:"priority_source"`
	ExchangeRates      map[string]float64 `mapstructure:"exchange_rates"`
	EnableDebugLogging bool               `mapstructure:"enable_debug_logging"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricescout/")

	v.SetEnvPrefix("PRICESCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
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
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Provider defaults
	v.SetDefault("providers.max_results", 10)

	// Pipeline defaults
	v.SetDefault("pipeline.priority_source", "google")
	v.SetDefault("pipeline.enable_debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.ttl", "15m")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Providers.SerpAPIKey == "" &&
		config.Providers.BraveAPIKey == "" &&
		config.Providers.TavilyAPIKey == "" {
		return fmt.Errorf("at least one search provider key is required " +
			"(set PRICESCOUT_PROVIDERS_SERPAPI_KEY, PRICESCOUT_PROVIDERS_BRAVE_KEY or PRICESCOUT_PROVIDERS_TAVILY_KEY)")
	}

	if config.Providers.MaxResults <= 0 {
		return fmt.Errorf("providers.max_results must be positive, got: %d", config.Providers.MaxResults)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Grouping  GroupingConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds fragrance catalog configuration
type CatalogConfig struct {
	Backend         string        `mapstructure:"backend"` // "http" or "meilisearch"
	BaseURL         string        `mapstructure:"base_url"`
	APIKey          string        `mapstructure:"api_key"`
	IndexName       string        `mapstructure:"index_name"`
	RequestsPerHour int           `mapstructure:"requests_per_hour"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxResults      int           `mapstructure:"max_results"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// GroupingConfig holds variant grouping configuration
type GroupingConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	ParallelThreshold   int     `mapstructure:"parallel_threshold"`
	MaxWorkers          int     `mapstructure:"max_workers"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/scentmatch/")

	// Environment variable settings, e.g. SCENTMATCH_CATALOG_BASE_URL
	v.SetEnvPrefix("SCENTMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
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

// loadEnvFile loads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func loadEnvFile() error {
	if err := godotenv.Load(".env"); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading .env file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values. Every key is registered so
// that AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.backend", "http")
	v.SetDefault("catalog.base_url", "")
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.index_name", "fragrances")
	v.SetDefault("catalog.requests_per_hour", 3600)
	v.SetDefault("catalog.timeout", "10s")
	v.SetDefault("catalog.max_results", 50)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "15m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)

	// Grouping defaults
	v.SetDefault("grouping.similarity_threshold", 0.7)
	v.SetDefault("grouping.parallel_threshold", 64)
	v.SetDefault("grouping.max_workers", 8)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Catalog.Backend {
	case "http", "meilisearch":
	default:
		return fmt.Errorf("catalog backend must be 'http' or 'meilisearch', got: %s", config.Catalog.Backend)
	}

	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required for the %s backend (set SCENTMATCH_CATALOG_BASE_URL)", config.Catalog.Backend)
	}

	if config.Catalog.MaxResults < 1 || config.Catalog.MaxResults > 100 {
		return fmt.Errorf("catalog max_results must be between 1 and 100, got: %d", config.Catalog.MaxResults)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	if t := config.Grouping.SimilarityThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("grouping similarity_threshold must be in (0, 1], got: %v", t)
	}

	if config.Grouping.MaxWorkers <= 0 {
		return fmt.Errorf("grouping max_workers must be positive, got: %d", config.Grouping.MaxWorkers)
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level must be debug, info, warn or error, got: %s", config.Logging.Level)
	}

	if config.Logging.Format != "console" && config.Logging.Format != "json" {
		return fmt.Errorf("logging format must be 'console' or 'json', got: %s", config.Logging.Format)
	}

	return nil
}

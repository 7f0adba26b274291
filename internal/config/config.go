package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/ChukaCSTD/Macys-Clone/pkg/config"
)

// Storage backend identifiers.
const (
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all configuration for the storefront client core.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Remote storefront API.
	APIBaseURL  string `env:"STOREFRONT_API_URL" envDefault:"http://ecommerce.reworkstaging.name.ng/v2"`
	HTTPTimeout int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"30"`
	HTTPRetries int    `env:"HTTP_MAX_RETRIES" envDefault:"3"`

	// Local persistent storage.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"bolt"`
	StoragePath    string `env:"STORAGE_PATH" envDefault:"storefront.db"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`

	// Catalog normalization defaults.
	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"USD"`
	DefaultBrand    string `env:"DEFAULT_BRAND" envDefault:"Nike"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendBolt, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %q", c.StorageBackend)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("storefront API base URL must not be empty")
	}
	if c.HTTPTimeout < 1 {
		return fmt.Errorf("invalid HTTP timeout: %d", c.HTTPTimeout)
	}
	if c.StorageBackend == BackendBolt && c.StoragePath == "" {
		return fmt.Errorf("storage path must not be empty for the bolt backend")
	}
	return nil
}

// Timeout returns the configured HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Blob     BlobConfig
	Checkout CheckoutConfig
	Sample   SampleConfig
	Logger   LoggerConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// CatalogConfig holds configuration for the backend catalogue API.
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

// BlobConfig holds configuration for the session blob store.
type BlobConfig struct {
	Backend       string // "memory", "file" or "redis"
	Dir           string // file backend: directory holding one file per key
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// CheckoutConfig holds checkout-related configuration.
type CheckoutConfig struct {
	ExpressFee  int64  // express shipping surcharge in VND
	OrderPrefix string // literal tag prefixed to generated order numbers
}

// SampleConfig holds configuration for the static sample catalogue used
// when the live catalogue cannot be reached.
type SampleConfig struct {
	Path      string
	S3Enabled bool
	S3Bucket  string
	S3Region  string
	S3Key     string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8090),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:8000"),
			Timeout: time.Duration(getEnvAsInt("CATALOG_TIMEOUT", 10)) * time.Second,
		},
		Blob: BlobConfig{
			Backend:       getEnv("BLOB_BACKEND", "file"),
			Dir:           getEnv("BLOB_DIR", "data/sessions"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			RedisPrefix:   getEnv("REDIS_PREFIX", "furnistore:"),
		},
		Checkout: CheckoutConfig{
			ExpressFee:  int64(getEnvAsInt("CHECKOUT_EXPRESS_FEE", 50000)),
			OrderPrefix: getEnv("CHECKOUT_ORDER_PREFIX", "FURNI-"),
		},
		Sample: SampleConfig{
			Path:      getEnv("SAMPLE_CATALOG_PATH", "data/products.json"),
			S3Enabled: getEnvAsBool("SAMPLE_S3_ENABLED", false),
			S3Bucket:  getEnv("SAMPLE_S3_BUCKET", ""),
			S3Region:  getEnv("SAMPLE_S3_REGION", "ap-southeast-1"),
			S3Key:     getEnv("SAMPLE_S3_KEY", "catalog/products.json"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required")
	}

	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive")
	}

	switch c.Blob.Backend {
	case "memory":
	case "file":
		if c.Blob.Dir == "" {
			return fmt.Errorf("blob directory is required for the file backend")
		}
	case "redis":
		if c.Blob.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid blob backend: %s (must be memory, file or redis)", c.Blob.Backend)
	}

	if c.Checkout.ExpressFee < 0 {
		return fmt.Errorf("express shipping fee cannot be negative")
	}

	if c.Checkout.OrderPrefix == "" {
		return fmt.Errorf("order number prefix is required")
	}

	if c.Sample.Path == "" && !c.Sample.S3Enabled {
		return fmt.Errorf("sample catalog path is required when S3 is disabled")
	}

	if c.Sample.S3Enabled {
		if c.Sample.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.Sample.S3Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

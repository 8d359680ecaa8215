// ABOUTME: Configuration for the resolver: HTTP client, response cache and logging
// ABOUTME: Values come from defaults, then an optional TOML file, then environment variables

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// ConfigFileEnv names the environment variable pointing at a TOML config file
const ConfigFileEnv = "FEEDRESOLVER_CONFIG"

// DefaultUserAgent is sent with every request unless overridden
const DefaultUserAgent = "feeder-resolver/1.0"

// Config holds all application configuration
type Config struct {
	// HTTP contains fetch configuration
	HTTP HTTPConfig `toml:"http"`

	// Cache contains response cache configuration
	Cache CacheConfig `toml:"cache"`

	// Log contains logger configuration
	Log LogConfig `toml:"log"`
}

// HTTPConfig holds HTTP client configuration
type HTTPConfig struct {
	// TimeoutSeconds bounds a whole request including reading headers
	TimeoutSeconds int `toml:"timeout_seconds"`

	UserAgent string `toml:"user_agent"`

	// Workers is the number of concurrent fetches
	Workers int `toml:"workers"`

	// QueueSize is how many fetches may wait for a worker
	QueueSize int `toml:"queue_size"`

	// RateLimit is the sustained requests per second, 0 for unlimited
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/sqlite/redis/none)
	Type string `toml:"type"`

	// Dir is where the sqlite backend keeps its database
	Dir string `toml:"dir"`

	// TTLSeconds bounds how long a stored response is kept, 0 keeps it until replaced
	TTLSeconds int `toml:"ttl_seconds"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `toml:"address"`

	// Password is the Redis authentication password
	Password string `toml:"password"`

	// DB is the Redis database number
	DB int `toml:"db"`

	// KeyPrefix namespaces cache keys
	KeyPrefix string `toml:"key_prefix"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`

	// Format is text or json
	Format string `toml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			TimeoutSeconds: 30,
			UserAgent:      DefaultUserAgent,
			Workers:        8,
			QueueSize:      64,
		},
		Cache: CacheConfig{
			Type: "memory",
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromEnv loads configuration from the file named by FEEDRESOLVER_CONFIG,
// if any, and environment variables
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv(ConfigFileEnv))
}

// Load reads the TOML file at path (skipped when empty) over the defaults and
// then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTP.TimeoutSeconds = getEnvAsIntOrDefault("HTTP_TIMEOUT", c.HTTP.TimeoutSeconds)
	c.HTTP.UserAgent = getEnvOrDefault("HTTP_USER_AGENT", c.HTTP.UserAgent)
	c.HTTP.Workers = getEnvAsIntOrDefault("HTTP_WORKERS", c.HTTP.Workers)
	c.HTTP.QueueSize = getEnvAsIntOrDefault("HTTP_QUEUE_SIZE", c.HTTP.QueueSize)
	c.HTTP.RateLimit = getEnvAsFloatOrDefault("HTTP_RATE_LIMIT", c.HTTP.RateLimit)
	c.HTTP.RateBurst = getEnvAsIntOrDefault("HTTP_RATE_BURST", c.HTTP.RateBurst)

	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.Dir = getEnvOrDefault("CACHE_DIR", c.Cache.Dir)
	c.Cache.TTLSeconds = getEnvAsIntOrDefault("CACHE_TTL", c.Cache.TTLSeconds)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Cache.Redis.DB)
	c.Cache.Redis.KeyPrefix = getEnvOrDefault("REDIS_KEY_PREFIX", c.Cache.Redis.KeyPrefix)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
}

// Timeout returns the request timeout as a duration
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// TTL returns the cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTP.TimeoutSeconds < 1 {
		return errors.New("http timeout must be at least 1 second")
	}

	if c.HTTP.Workers < 1 {
		return errors.New("http workers must be at least 1")
	}

	if c.HTTP.RateLimit < 0 {
		return errors.New("http rate limit cannot be negative")
	}

	switch c.Cache.Type {
	case "memory", "none":
	case "sqlite":
		if c.Cache.Dir == "" {
			return errors.New("cache dir cannot be empty when using sqlite cache")
		}
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'sqlite', 'redis' or 'none'")
	}

	if c.Cache.TTLSeconds < 0 {
		return errors.New("cache ttl cannot be negative")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}

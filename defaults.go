// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for loggers and response cache backends

package feedresolver

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"feeder-resolver/core/interfaces"
	"feeder-resolver/infrastructure/cache/memory"
	"feeder-resolver/infrastructure/cache/redis"
	"feeder-resolver/infrastructure/cache/sqlite"
	"feeder-resolver/infrastructure/http/standard"
	"feeder-resolver/infrastructure/logger/structured"
	"feeder-resolver/pkg/config"
)

// CacheFileName is the database file Configure creates inside the cache directory
const CacheFileName = "http-cache.db"

// DefaultGracePeriod is how long a replaced HTTP client stays open
const DefaultGracePeriod = 30 * time.Second

// DefaultMemoryCache creates an in-memory response cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultSQLiteCache opens the response cache database inside cacheDir, creating the directory
func DefaultSQLiteCache(cacheDir string, logger interfaces.Logger) (interfaces.Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	cache, err := sqlite.NewSQLiteCache(filepath.Join(cacheDir, CacheFileName), logger)
	if err != nil {
		return nil, err
	}
	return cache, nil
}

// DefaultRedisCache connects to a shared Redis response cache
func DefaultRedisCache(cfg config.RedisConfig) (interfaces.Cache, error) {
	cache, err := redis.NewRedisCache(cfg)
	if err != nil {
		return nil, err
	}
	return cache, nil
}

// DefaultLogger creates a logrus text logger writing to stderr at info level
func DefaultLogger() interfaces.Logger {
	logger, err := structured.NewLogger(structured.Config{Level: "info", Format: "text"})
	if err != nil {
		return structured.Nop()
	}
	return logger
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return structured.Nop()
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		HTTP:        standard.DefaultConfig(),
		Logger:      DefaultLogger(),
		GracePeriod: DefaultGracePeriod,
	}
}

func validateConfig(c *Config) error {
	if c.Logger == nil {
		c.Logger = QuietLogger()
	}
	if c.GracePeriod < 0 {
		return NewError(ErrorTypeValidation, "grace period cannot be negative").
			WithContext("grace_period", c.GracePeriod.String())
	}
	if c.HTTP.RateLimit < 0 {
		return NewError(ErrorTypeValidation, "rate limit cannot be negative").
			WithContext("rate_limit", c.HTTP.RateLimit)
	}
	return nil
}

// ABOUTME: Configuration options for the resolver library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package feedresolver

import (
	"time"

	"feeder-resolver/core/feed"
	"feeder-resolver/core/interfaces"
	"feeder-resolver/infrastructure/http/standard"
	"feeder-resolver/infrastructure/logger/structured"
	"feeder-resolver/infrastructure/workers"
	"feeder-resolver/pkg/config"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithQuietMode discards all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

// WithCache sets the response cache of the first HTTP client. The client
// takes ownership and closes it.
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithCacheDir keeps responses in a database inside dir
func WithCacheDir(dir string) Option {
	return func(c *Config) error {
		c.CacheDir = dir
		return nil
	}
}

// WithoutCache disables response caching unless a cache directory is configured
func WithoutCache() Option {
	return func(c *Config) error {
		c.DisableCache = true
		return nil
	}
}

// WithHTTPConfig replaces the HTTP client settings
func WithHTTPConfig(cfg standard.Config) Option {
	return func(c *Config) error {
		c.HTTP = cfg
		return nil
	}
}

// WithParserOptions customizes the feed parser
func WithParserOptions(opts ...feed.ParserOption) Option {
	return func(c *Config) error {
		c.ParserOptions = append(c.ParserOptions, opts...)
		return nil
	}
}

// WithGracePeriod sets how long a replaced HTTP client keeps serving in-flight fetches
func WithGracePeriod(d time.Duration) Option {
	return func(c *Config) error {
		c.GracePeriod = d
		return nil
	}
}

// WithConfig applies a loaded configuration: HTTP settings, cache backend and logger
func WithConfig(cfg *config.Config) Option {
	return func(c *Config) error {
		if err := cfg.Validate(); err != nil {
			return NewError(ErrorTypeValidation, "invalid configuration").WithCause(err)
		}

		c.HTTP.Timeout = cfg.HTTP.Timeout()
		c.HTTP.UserAgent = cfg.HTTP.UserAgent
		c.HTTP.RateLimit = cfg.HTTP.RateLimit
		c.HTTP.RateBurst = cfg.HTTP.RateBurst
		c.HTTP.CacheTTL = cfg.Cache.TTL()
		c.HTTP.Workers = workers.DefaultWorkerConfig()
		if cfg.HTTP.Workers > 0 {
			c.HTTP.Workers.MaxWorkers = cfg.HTTP.Workers
		}
		if cfg.HTTP.QueueSize > 0 {
			c.HTTP.Workers.QueueSize = cfg.HTTP.QueueSize
		}

		logger, err := structured.NewLogger(structured.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
		})
		if err != nil {
			return NewError(ErrorTypeConfiguration, "failed to create logger").WithCause(err)
		}
		c.Logger = logger

		switch cfg.Cache.Type {
		case "sqlite":
			c.CacheDir = cfg.Cache.Dir
		case "redis":
			cache, err := DefaultRedisCache(cfg.Cache.Redis)
			if err != nil {
				return NewError(ErrorTypeConfiguration, "failed to connect to redis").
					WithCause(err).
					WithContext("address", cfg.Cache.Redis.Address)
			}
			c.Cache = cache
		case "none":
			c.DisableCache = true
		}

		return nil
	}
}

// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-memory response cache backed by go-cache
// - cache/sqlite: persistent response cache in a SQLite file
// - cache/redis: shared response cache in Redis
// - http/standard: cached, rate-limited HTTP client with reactive basic auth
// - logger/structured: logrus logger
// - workers: bounded worker pool that runs fetches
//
// # Cache Implementations
//
// Every backend stores raw response dumps for the HTTP cache transport:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// # HTTP Client
//
//	cfg := standard.DefaultConfig()
//	cfg.Cache = memory.NewMemoryCache()
//	client, err := standard.NewClient(cfg, logger)
//	if err != nil {
//	    // Handle error
//	}
//	defer client.Close()
//
//	resp, err := client.Fetch(ctx, "https://example.com/feed.xml", interfaces.WithForceNetwork())
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Close()
//
// # Logger
//
//	logger, err := structured.NewLogger(structured.Config{Level: "debug", Format: "json"})
//	logger.Info("Resolving feed", map[string]interface{}{
//	    "url": "https://example.com/",
//	})
package infrastructure

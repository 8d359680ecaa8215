// ABOUTME: Main client for the feed resolver providing discovery, fetching and parsing
// ABOUTME: The active HTTP client sits behind an atomic pointer so Configure can swap it while fetches run

package feedresolver

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"feeder-resolver/core/discovery"
	corerrors "feeder-resolver/core/errors"
	"feeder-resolver/core/feed"
	"feeder-resolver/core/interfaces"
	"feeder-resolver/core/resolver"
	"feeder-resolver/infrastructure/http/standard"
	"feeder-resolver/infrastructure/workers"
	"feeder-resolver/pkg/utils/links"
)

// Client is the main entry point for the feed resolver
type Client struct {
	config Config

	// current is read by every fetch; writers hold mu
	current atomic.Pointer[standard.Client]

	mu       sync.Mutex
	cacheDir string
	retiring map[*standard.Client]*time.Timer
	closed   bool

	parser    *feed.Parser
	discovery *discovery.Service
	resolver  *resolver.Service
}

// Config holds the configuration for the client
type Config struct {
	// HTTP configures every HTTP client the facade builds. Its Cache field is ignored.
	HTTP standard.Config

	// Cache is used by the first HTTP client instead of a cache picked from CacheDir
	Cache interfaces.Cache

	// CacheDir holds the persistent response cache; empty means in memory
	CacheDir string

	// DisableCache turns response caching off when no CacheDir is set
	DisableCache bool

	Logger interfaces.Logger

	ParserOptions []feed.ParserOption

	// GracePeriod is how long a replaced HTTP client keeps serving in-flight fetches
	GracePeriod time.Duration
}

// NewClient creates a new resolver client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	c := &Client{
		config:   config,
		cacheDir: config.CacheDir,
		retiring: make(map[*standard.Client]*time.Timer),
	}

	parserOptions := append([]feed.ParserOption{feed.WithLogger(config.Logger)}, config.ParserOptions...)
	c.parser = feed.NewParser(parserOptions...)

	// Services fetch through the facade so they always use the active client
	deps := interfaces.Dependencies{
		HTTPClient: c,
		Logger:     config.Logger,
	}
	c.discovery = discovery.NewService(deps)
	c.resolver = resolver.NewService(deps, c.parser)

	first, err := c.build(config.CacheDir, config.Cache)
	if err != nil {
		return nil, err
	}
	c.current.Store(first)

	return c, nil
}

// Configure points the response cache at cacheDir. An empty cacheDir selects
// an in-memory cache. Calling it again with the same directory does nothing.
// Fetches already running finish on the client they started with.
func (c *Client) Configure(cacheDir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	if cacheDir == c.cacheDir {
		return nil
	}

	next, err := c.build(cacheDir, nil)
	if err != nil {
		return err
	}

	old := c.current.Swap(next)
	c.cacheDir = cacheDir
	c.retire(old)

	c.config.Logger.Info("HTTP client reconfigured", map[string]interface{}{
		"cache_dir": cacheDir,
	})

	return nil
}

// CacheDir returns the directory passed to the last successful Configure
func (c *Client) CacheDir() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cacheDir
}

func (c *Client) build(cacheDir string, explicit interfaces.Cache) (*standard.Client, error) {
	cache, err := c.cacheFor(cacheDir, explicit)
	if err != nil {
		return nil, NewError(ErrorTypeConfiguration, "failed to open response cache").
			WithCause(err).
			WithContext("cache_dir", cacheDir)
	}

	httpConfig := c.config.HTTP
	httpConfig.Cache = cache

	client, err := standard.NewClient(httpConfig, c.config.Logger)
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		return nil, NewError(ErrorTypeConfiguration, "failed to build HTTP client").WithCause(err)
	}

	return client, nil
}

func (c *Client) cacheFor(cacheDir string, explicit interfaces.Cache) (interfaces.Cache, error) {
	switch {
	case explicit != nil:
		return explicit, nil
	case cacheDir != "":
		return DefaultSQLiteCache(cacheDir, c.config.Logger)
	case c.config.DisableCache:
		return nil, nil
	default:
		return DefaultMemoryCache(), nil
	}
}

// retire closes old once the grace period is over. Callers hold mu.
func (c *Client) retire(old *standard.Client) {
	if old == nil {
		return
	}

	c.retiring[old] = time.AfterFunc(c.config.GracePeriod, func() {
		c.mu.Lock()
		delete(c.retiring, old)
		c.mu.Unlock()

		c.closeHTTPClient(old)
	})
}

func (c *Client) closeHTTPClient(client *standard.Client) {
	if err := client.Close(); err != nil {
		c.config.Logger.Warn("Failed to close HTTP client", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Close shuts down the active HTTP client and any replaced one still in its grace period
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	var pending []*standard.Client
	for client, timer := range c.retiring {
		if timer.Stop() {
			pending = append(pending, client)
		}
		delete(c.retiring, client)
	}
	active := c.current.Swap(nil)
	c.mu.Unlock()

	for _, client := range pending {
		c.closeHTTPClient(client)
	}
	if active != nil {
		return active.Close()
	}
	return nil
}

// Fetch performs a GET request on the active HTTP client
func (c *Client) Fetch(ctx context.Context, rawURL string, opts ...interfaces.FetchOption) (interfaces.Response, error) {
	client := c.current.Load()
	if client == nil {
		return nil, corerrors.NewFetchError("", ErrClientClosed)
	}
	return c.fetchOn(ctx, client, rawURL, opts...)
}

// fetchOn fetches with client. A client retired by Configure between the
// pointer load and the submit hands the fetch to its replacement.
func (c *Client) fetchOn(ctx context.Context, client *standard.Client, rawURL string, opts ...interfaces.FetchOption) (interfaces.Response, error) {
	resp, err := client.Fetch(ctx, rawURL, opts...)
	if err == nil || !errors.Is(err, workers.ErrWorkerNotRunning) {
		return resp, err
	}

	next := c.current.Load()
	if next == nil {
		return nil, corerrors.NewFetchError("", ErrClientClosed)
	}
	if next == client {
		return nil, err
	}
	return next.Fetch(ctx, rawURL, opts...)
}

// FetchFeedLinksAtURL fetches a page and returns the feeds it advertises.
// Every failure yields an empty slice.
func (c *Client) FetchFeedLinksAtURL(ctx context.Context, rawURL string) []FeedLink {
	return c.discovery.FetchFeedLinksAtURL(ctx, rawURL)
}

// DiscoverFeedLinks returns the feed links advertised by html. baseURL may be
// empty, in which case links are only normalized.
func (c *Client) DiscoverFeedLinks(html, baseURL string) []FeedLink {
	return discovery.DiscoverFeedLinks(html, parseBase(baseURL))
}

// SelectBestFeedURL returns the advertised feed preferred by prefs, or nil
func (c *Client) SelectBestFeedURL(html, baseURL string, prefs Preference) *url.URL {
	return discovery.SelectBestFeedURL(html, parseBase(baseURL), prefs)
}

// ParseResponseBody decodes body as a feed; contentType selects JSON Feed or RSS/Atom
func (c *Client) ParseResponseBody(contentType string, body []byte, requestURL string) (*Feed, error) {
	return c.parser.ParseResponseBody(contentType, body, requestURL)
}

// ResolveFeed fetches rawURL and parses it as a feed
func (c *Client) ResolveFeed(ctx context.Context, rawURL string) (*Feed, error) {
	return c.resolver.ResolveFeed(ctx, rawURL)
}

// ResolveFeedWithPageFallback follows the feed advertised by resp, or parses resp itself as a feed
func (c *Client) ResolveFeedWithPageFallback(ctx context.Context, resp interfaces.Response) (*Feed, error) {
	return c.resolver.ResolveFeedWithPageFallback(ctx, resp)
}

// ResolveURL fetches rawURL, which may be a page or a feed, and returns the feed it leads to
func (c *Client) ResolveURL(ctx context.Context, rawURL string) (*Feed, error) {
	return c.resolver.ResolveURL(ctx, rawURL)
}

func parseBase(baseURL string) *url.URL {
	if baseURL == "" {
		return nil
	}
	base, err := links.StrictURL(baseURL)
	if err != nil {
		return nil
	}
	return base
}

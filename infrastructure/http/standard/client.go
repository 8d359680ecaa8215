// ABOUTME: HTTP fetch client with an RFC 7234 response cache, reactive basic auth and a bounded worker pool
// ABOUTME: Every GET runs on the pool; callers get the response as soon as headers arrive

package standard

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gregjones/httpcache"
	"golang.org/x/time/rate"

	corerrors "feeder-resolver/core/errors"
	"feeder-resolver/core/interfaces"
	"feeder-resolver/infrastructure/workers"
)

// DefaultUserAgent is used when Config.UserAgent is empty
const DefaultUserAgent = "feeder-resolver/1.0"

// forceNetworkCacheControl makes the cache revalidate instead of serving a stored copy
const forceNetworkCacheControl = "max-age=0, max-stale=0"

// Config holds the settings of one client. A Client never changes its
// Config after construction.
type Config struct {
	Timeout   time.Duration
	UserAgent string

	// Cache stores responses; nil disables caching. The client owns it and closes it.
	Cache interfaces.Cache

	// CacheTTL bounds how long a stored response is kept, 0 keeps it until replaced
	CacheTTL time.Duration

	Workers workers.WorkerConfig

	// RateLimit is the sustained requests per second, 0 for unlimited
	RateLimit float64
	RateBurst int

	// Transport overrides the network transport
	Transport http.RoundTripper
}

// DefaultConfig returns the default client configuration
func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		UserAgent: DefaultUserAgent,
		Workers:   workers.DefaultWorkerConfig(),
	}
}

// Client implements the HTTPClient interface
type Client struct {
	config  Config
	base    http.RoundTripper
	cache   httpcache.Cache
	client  *http.Client
	pool    *workers.Pool
	limiter *rate.Limiter
	logger  interfaces.Logger
}

// fetchResult carries a finished round trip from a worker back to Fetch
type fetchResult struct {
	resp *http.Response
	err  error
}

// NewClient builds a client and starts its worker pool
func NewClient(cfg Config, logger interfaces.Logger) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("rate limit cannot be negative: %v", cfg.RateLimit)
	}

	c := &Client{
		config: cfg,
		base:   cfg.Transport,
		logger: logger,
	}

	if c.base == nil {
		c.base = newBaseTransport()
	}

	if cfg.Cache != nil {
		c.cache = newResponseCache(cfg.Cache, cfg.CacheTTL, logger)
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	c.client = &http.Client{
		Transport: transport(c.base, c.cache),
		Timeout:   cfg.Timeout,
	}

	c.pool = workers.NewPool(cfg.Workers, logger)
	if err := c.pool.Start(); err != nil {
		return nil, err
	}

	return c, nil
}

func newBaseTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

// transport stacks cache over next; a nil cache disables caching
func transport(next http.RoundTripper, cache httpcache.Cache) http.RoundTripper {
	if cache == nil {
		return next
	}
	return &httpcache.Transport{
		Transport:           next,
		Cache:               cache,
		MarkCachedResponses: true,
	}
}

// httpClientFor returns the shared client, or a per-request one that
// answers authentication challenges with credentials. Responses fetched with
// credentials are cached apart from anonymous ones and from other credentials.
func (c *Client) httpClientFor(credentials, host string) *http.Client {
	if credentials == "" {
		return c.client
	}

	var cache httpcache.Cache
	if c.cache != nil {
		cache = newScopedCache(c.cache, credentials)
	}

	return &http.Client{
		Transport: transport(&basicAuthTransport{
			next:        c.base,
			credentials: credentials,
			host:        host,
			logger:      c.logger,
		}, cache),
		Timeout: c.config.Timeout,
	}
}

// Fetch performs a GET request on the worker pool
func (c *Client) Fetch(ctx context.Context, rawURL string, opts ...interfaces.FetchOption) (interfaces.Response, error) {
	options := interfaces.ApplyFetchOptions(opts)

	req, credentials, err := c.newRequest(ctx, rawURL, options)
	if err != nil {
		return nil, corerrors.NewFetchError(redact(rawURL), err)
	}
	target := req.URL.String()

	results := make(chan fetchResult)
	job := func() {
		res := c.roundTrip(ctx, req, credentials)
		select {
		case results <- res:
		case <-ctx.Done():
			// nobody is waiting any more
			if res.resp != nil {
				res.resp.Body.Close()
			}
		}
	}

	if err := c.pool.Submit(ctx, job); err != nil {
		return nil, corerrors.NewFetchError(target, err)
	}

	select {
	case res := <-results:
		return c.handle(target, res)
	case <-ctx.Done():
		return nil, corerrors.NewFetchError(target, ctx.Err())
	}
}

func (c *Client) newRequest(ctx context.Context, rawURL string, options interfaces.FetchOptions) (*http.Request, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	credentials := credentialsFromURL(u)
	u.User = nil

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	if options.ForceNetwork {
		req.Header.Set("Cache-Control", forceNetworkCacheControl)
	}

	return req, credentials, nil
}

// roundTrip runs on a worker
func (c *Client) roundTrip(ctx context.Context, req *http.Request, credentials string) fetchResult {
	if err := ctx.Err(); err != nil {
		return fetchResult{err: err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fetchResult{err: err}
		}
	}

	resp, err := c.httpClientFor(credentials, req.URL.Host).Do(req)
	return fetchResult{resp: resp, err: err}
}

func (c *Client) handle(target string, res fetchResult) (interfaces.Response, error) {
	if res.err != nil {
		c.debug("Fetch failed", map[string]interface{}{
			"url":   target,
			"error": res.err.Error(),
		})
		return nil, corerrors.NewFetchError(target, res.err)
	}

	resp := res.resp
	c.debug("Fetched resource", map[string]interface{}{
		"url":        target,
		"status":     resp.StatusCode,
		"from_cache": resp.Header.Get(httpcache.XFromCache) == "1",
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, corerrors.NewStatusError(target, resp.StatusCode)
	}

	return newResponse(resp, target), nil
}

// Close stops the worker pool, waits for queued fetches and closes the cache
func (c *Client) Close() error {
	if err := c.pool.Stop(); err != nil {
		return err
	}
	if c.config.Cache != nil {
		return c.config.Cache.Close()
	}
	return nil
}

func (c *Client) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

// redact removes credentials from a URL for error messages
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	u.User = nil
	return u.String()
}

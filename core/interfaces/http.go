package interfaces

import (
	"context"
	"io"
)

// HTTPClient fetches resources for discovery and parsing.
// Only GET is ever issued.
type HTTPClient interface {
	// Fetch performs a GET request and returns once response headers are in.
	// Non-2xx statuses are reported as errors; the returned Response is
	// always 2xx and must be closed by the caller.
	Fetch(ctx context.Context, url string, opts ...FetchOption) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body. It can be read once.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Returns an empty string if the header is not present.
	// Header names are case-insensitive.
	Header(key string) string

	// RequestURL is the URL of the request that produced this response,
	// after redirects and without credentials.
	RequestURL() string

	// Close releases the body. Safe to call more than once.
	Close() error
}

// FetchOptions holds per-request settings
type FetchOptions struct {
	// ForceNetwork makes the cache revalidate with the origin server
	ForceNetwork bool
}

// FetchOption configures a single Fetch call
type FetchOption func(*FetchOptions)

// WithForceNetwork asks the cache to revalidate instead of serving a stored copy
func WithForceNetwork() FetchOption {
	return func(o *FetchOptions) {
		o.ForceNetwork = true
	}
}

// ApplyFetchOptions folds opts into a FetchOptions value
func ApplyFetchOptions(opts []FetchOption) FetchOptions {
	var o FetchOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

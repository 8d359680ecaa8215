// ABOUTME: Resolver service chains fetch, discovery and parsing into a single feed lookup
// ABOUTME: A page URL resolves to the feed it advertises, or is parsed as a feed when it advertises none

package resolver

import (
	"context"
	"errors"
	"io"
	"net/url"

	"feeder-resolver/core/discovery"
	"feeder-resolver/core/domain"
	corerrors "feeder-resolver/core/errors"
	"feeder-resolver/core/feed"
	"feeder-resolver/core/interfaces"
)

// Service resolves URLs into parsed feeds
type Service struct {
	deps   interfaces.Dependencies
	parser *feed.Parser
}

// NewService creates a new resolver service instance. A nil parser gets the default gofeed-backed one.
func NewService(deps interfaces.Dependencies, parser *feed.Parser) *Service {
	if parser == nil {
		parser = feed.NewParser(feed.WithLogger(deps.Logger))
	}
	return &Service{
		deps:   deps,
		parser: parser,
	}
}

// ResolveFeed fetches rawURL and parses the response as a feed
func (s *Service) ResolveFeed(ctx context.Context, rawURL string) (*domain.Feed, error) {
	if s.deps.HTTPClient == nil {
		return nil, corerrors.NewResolutionError(rawURL, errors.New("HTTP client not configured"))
	}

	resp, err := s.deps.HTTPClient.Fetch(ctx, rawURL)
	if err != nil {
		return nil, corerrors.NewResolutionError(rawURL, err)
	}

	body, err := readAndClose(resp)
	if err != nil {
		return nil, corerrors.NewResolutionError(rawURL, corerrors.NewFetchError(rawURL, err))
	}

	parsed, err := s.parser.ParseResponseBody(resp.Header("Content-Type"), body, requestURL(resp, rawURL))
	if err != nil {
		return nil, corerrors.NewResolutionError(rawURL, err)
	}

	s.debug("Resolved feed", map[string]interface{}{
		"url":   rawURL,
		"feed":  parsed.FeedURL,
		"items": len(parsed.Items),
	})

	return parsed, nil
}

// ResolveFeedWithPageFallback treats resp as an HTML page first: when it
// advertises a feed (Atom preferred) that feed is resolved, otherwise the
// body is parsed as a feed itself. resp is consumed and closed.
func (s *Service) ResolveFeedWithPageFallback(ctx context.Context, resp interfaces.Response) (*domain.Feed, error) {
	pageURL := resp.RequestURL()

	body, err := readAndClose(resp)
	if err != nil {
		return nil, corerrors.NewResolutionError(pageURL, corerrors.NewFetchError(pageURL, err))
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	if alternate := discovery.SelectBestFeedURL(string(body), base, discovery.Preference{PreferAtom: true}); alternate != nil {
		s.debug("Page advertises a feed", map[string]interface{}{
			"url":  pageURL,
			"feed": alternate.String(),
		})
		return s.ResolveFeed(ctx, alternate.String())
	}

	parsed, err := s.parser.ParseResponseBody(resp.Header("Content-Type"), body, pageURL)
	if err != nil {
		return nil, corerrors.NewResolutionError(pageURL, err)
	}

	return parsed, nil
}

// ResolveURL resolves a URL a user typed, which may be a feed or a page linking to one
func (s *Service) ResolveURL(ctx context.Context, rawURL string) (*domain.Feed, error) {
	if s.deps.HTTPClient == nil {
		return nil, corerrors.NewResolutionError(rawURL, errors.New("HTTP client not configured"))
	}

	resp, err := s.deps.HTTPClient.Fetch(ctx, rawURL)
	if err != nil {
		return nil, corerrors.NewResolutionError(rawURL, err)
	}

	return s.ResolveFeedWithPageFallback(ctx, resp)
}

func readAndClose(resp interfaces.Response) ([]byte, error) {
	defer resp.Close()
	return io.ReadAll(resp.Body())
}

func requestURL(resp interfaces.Response, fallback string) string {
	if u := resp.RequestURL(); u != "" {
		return u
	}
	return fallback
}

func (s *Service) debug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

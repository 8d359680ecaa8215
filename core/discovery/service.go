// ABOUTME: Discovery service fetches a page and lists the feeds it advertises
// ABOUTME: Every failure is logged and reported as an empty result

package discovery

import (
	"context"
	"io"

	"feeder-resolver/core/domain"
	"feeder-resolver/core/interfaces"
	"feeder-resolver/pkg/utils/links"
)

// Service discovers feed links on remote pages
type Service struct {
	deps interfaces.Dependencies
}

// NewService creates a new discovery service instance
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{deps: deps}
}

// FetchFeedLinksAtURL fetches rawURL and returns the feed links found in
// the page, resolved against rawURL. Returns an empty slice on any failure.
func (s *Service) FetchFeedLinksAtURL(ctx context.Context, rawURL string) []domain.FeedLink {
	base, err := links.StrictURL(rawURL)
	if err != nil {
		s.warn("Invalid page URL for feed discovery", rawURL, err)
		return []domain.FeedLink{}
	}

	if s.deps.HTTPClient == nil {
		s.warn("HTTP client not configured", rawURL, nil)
		return []domain.FeedLink{}
	}

	resp, err := s.deps.HTTPClient.Fetch(ctx, rawURL)
	if err != nil {
		s.warn("Failed to fetch page for feed discovery", rawURL, err)
		return []domain.FeedLink{}
	}
	defer resp.Close()

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		s.warn("Failed to read page for feed discovery", rawURL, err)
		return []domain.FeedLink{}
	}

	return DiscoverFeedLinks(string(body), base)
}

func (s *Service) warn(msg, rawURL string, err error) {
	if s.deps.Logger == nil {
		return
	}
	fields := map[string]interface{}{"url": rawURL}
	if err != nil {
		fields["error"] = err.Error()
	}
	s.deps.Logger.Warn(msg, fields)
}

package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corerrors "feeder-resolver/core/errors"
	"feeder-resolver/core/interfaces"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Resolved RSS</title>
    <link>https://example.com/</link>
    <item><title>One</title><link>/posts/1</link></item>
  </channel>
</rss>`

const atomBody = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Resolved Atom</title>
  <id>urn:example</id>
  <updated>2024-03-01T10:00:00Z</updated>
  <entry><title>One</title><id>urn:1</id><link href="https://example.com/posts/1"/><updated>2024-03-01T10:00:00Z</updated></entry>
  <entry><title>Two</title><id>urn:2</id><link href="https://example.com/posts/2"/><updated>2024-03-01T10:00:00Z</updated></entry>
</feed>`

const pageBody = `<html><head>
  <link rel="alternate" type="application/rss+xml" href="/rss.xml">
  <link rel="alternate" type="application/atom+xml" href="/atom.xml">
</head><body>hello</body></html>`

// routeClient serves canned responses by URL and records requests
type routeClient struct {
	routes    map[string]*mockResponse
	requested []string
}

func (c *routeClient) Fetch(ctx context.Context, url string, opts ...interfaces.FetchOption) (interfaces.Response, error) {
	c.requested = append(c.requested, url)
	resp, ok := c.routes[url]
	if !ok {
		return nil, corerrors.NewStatusError(url, 404)
	}
	if resp.requestURL == "" {
		resp.requestURL = url
	}
	return resp, nil
}

func TestService_ResolveFeed_Success(t *testing.T) {
	resp := &mockResponse{statusCode: 200, body: rssBody, headers: map[string]string{"Content-Type": "application/rss+xml"}}
	client := &routeClient{routes: map[string]*mockResponse{"https://example.com/rss.xml": resp}}

	svc := NewService(interfaces.Dependencies{HTTPClient: client}, nil)
	feed, err := svc.ResolveFeed(context.Background(), "https://example.com/rss.xml")
	require.NoError(t, err)

	assert.Equal(t, "Resolved RSS", feed.Title)
	assert.Equal(t, "https://example.com/rss.xml", feed.FeedURL)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "https://example.com/posts/1", feed.Items[0].URL)
	assert.Equal(t, 1, resp.closed)
}

func TestService_ResolveFeed_UsesFinalRequestURL(t *testing.T) {
	resp := &mockResponse{statusCode: 200, body: rssBody, requestURL: "https://cdn.example.net/feeds/rss.xml"}
	client := &routeClient{routes: map[string]*mockResponse{"https://example.com/rss.xml": resp}}

	feed, err := NewService(interfaces.Dependencies{HTTPClient: client}, nil).ResolveFeed(context.Background(), "https://example.com/rss.xml")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.net/feeds/rss.xml", feed.FeedURL)
	assert.Equal(t, "https://cdn.example.net/posts/1", feed.Items[0].URL)
}

func TestService_ResolveFeed_FetchFailure(t *testing.T) {
	client := &routeClient{routes: map[string]*mockResponse{}}

	_, err := NewService(interfaces.Dependencies{HTTPClient: client}, nil).ResolveFeed(context.Background(), "https://example.com/missing.xml")
	require.Error(t, err)

	assert.True(t, corerrors.IsResolution(err))
	assert.True(t, corerrors.IsFetch(err))
	assert.False(t, corerrors.IsParse(err))
	assert.Equal(t, 404, corerrors.StatusCode(err))
}

func TestService_ResolveFeed_ParseFailure(t *testing.T) {
	resp := &mockResponse{statusCode: 200, body: "<html><body>not a feed</body></html>", headers: map[string]string{"Content-Type": "text/html"}}
	client := &routeClient{routes: map[string]*mockResponse{"https://example.com/": resp}}

	_, err := NewService(interfaces.Dependencies{HTTPClient: client}, nil).ResolveFeed(context.Background(), "https://example.com/")
	require.Error(t, err)

	assert.True(t, corerrors.IsResolution(err))
	assert.True(t, corerrors.IsParse(err))
	assert.False(t, corerrors.IsFetch(err))
	assert.Equal(t, 1, resp.closed)
}

func TestService_ResolveFeed_NoClient(t *testing.T) {
	_, err := NewService(interfaces.Dependencies{}, nil).ResolveFeed(context.Background(), "https://example.com/")
	assert.True(t, corerrors.IsResolution(err))
}

func TestService_ResolveFeedWithPageFallback_FollowsAdvertisedAtom(t *testing.T) {
	page := &mockResponse{statusCode: 200, body: pageBody, requestURL: "https://example.com/blog", headers: map[string]string{"Content-Type": "text/html"}}
	atom := &mockResponse{statusCode: 200, body: atomBody, headers: map[string]string{"Content-Type": "application/atom+xml"}}
	client := &routeClient{routes: map[string]*mockResponse{"https://example.com/atom.xml": atom}}

	feed, err := NewService(interfaces.Dependencies{HTTPClient: client}, nil).ResolveFeedWithPageFallback(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/atom.xml"}, client.requested)
	assert.Equal(t, "Resolved Atom", feed.Title)
	assert.Len(t, feed.Items, 2)
	assert.Equal(t, 1, page.closed)
	assert.Equal(t, 1, atom.closed)
}

func TestService_ResolveFeedWithPageFallback_BodyIsTheFeed(t *testing.T) {
	resp := &mockResponse{statusCode: 200, body: atomBody, requestURL: "https://example.com/atom", headers: map[string]string{"Content-Type": "application/atom+xml"}}
	client := &routeClient{routes: map[string]*mockResponse{}}

	feed, err := NewService(interfaces.Dependencies{HTTPClient: client}, nil).ResolveFeedWithPageFallback(context.Background(), resp)
	require.NoError(t, err)

	assert.Empty(t, client.requested)
	assert.Equal(t, "Resolved Atom", feed.Title)
	assert.Equal(t, "https://example.com/atom", feed.FeedURL)
}

func TestService_ResolveFeedWithPageFallback_AdvertisedFeedFails(t *testing.T) {
	page := &mockResponse{statusCode: 200, body: pageBody, requestURL: "https://example.com/"}
	client := &routeClient{routes: map[string]*mockResponse{}}

	_, err := NewService(interfaces.Dependencies{HTTPClient: client}, nil).ResolveFeedWithPageFallback(context.Background(), page)
	require.Error(t, err)

	assert.True(t, corerrors.IsResolution(err))
	assert.True(t, corerrors.IsFetch(err))
}

func TestService_ResolveFeedWithPageFallback_PlainPage(t *testing.T) {
	page := &mockResponse{statusCode: 200, body: "<html><body>no feeds here</body></html>", requestURL: "https://example.com/", headers: map[string]string{"Content-Type": "text/html"}}

	_, err := NewService(interfaces.Dependencies{HTTPClient: &routeClient{}}, nil).ResolveFeedWithPageFallback(context.Background(), page)

	assert.True(t, corerrors.IsResolution(err))
	assert.True(t, corerrors.IsParse(err))
}

func TestService_ResolveURL(t *testing.T) {
	page := &mockResponse{statusCode: 200, body: pageBody, headers: map[string]string{"Content-Type": "text/html"}}
	atom := &mockResponse{statusCode: 200, body: atomBody, headers: map[string]string{"Content-Type": "application/atom+xml"}}
	client := &routeClient{routes: map[string]*mockResponse{
		"https://example.com/":         page,
		"https://example.com/atom.xml": atom,
	}}

	feed, err := NewService(interfaces.Dependencies{HTTPClient: client}, nil).ResolveURL(context.Background(), "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/", "https://example.com/atom.xml"}, client.requested)
	assert.Equal(t, "Resolved Atom", feed.Title)
}

func TestService_ResolveURL_FetchError(t *testing.T) {
	client := &mockHTTPClient{
		fetchFunc: func(ctx context.Context, url string, opts ...interfaces.FetchOption) (interfaces.Response, error) {
			return nil, corerrors.NewFetchError(url, context.DeadlineExceeded)
		},
	}

	_, err := NewService(interfaces.Dependencies{HTTPClient: client}, nil).ResolveURL(context.Background(), "https://example.com/")

	assert.True(t, corerrors.IsFetch(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

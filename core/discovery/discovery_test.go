package discovery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feeder-resolver/core/domain"
)

const bothFeedsPage = `<!DOCTYPE html>
<html>
<head>
  <title>Example</title>
  <link rel="stylesheet" href="/style.css">
  <link rel="alternate" type="application/rss+xml" href="/rss.xml" title="RSS">
  <link rel="alternate" type="application/atom+xml" href="/atom.xml" title="Atom">
</head>
<body><p>hello</p></body>
</html>`

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestDiscoverFeedLinks_DocumentOrderAndResolution(t *testing.T) {
	got := DiscoverFeedLinks(bothFeedsPage, mustParse(t, "https://example.com/blog/"))

	assert.Equal(t, []domain.FeedLink{
		{URL: "https://example.com/rss.xml", Type: domain.TypeRSS},
		{URL: "https://example.com/atom.xml", Type: domain.TypeAtom},
	}, got)
}

func TestDiscoverFeedLinks_Filtering(t *testing.T) {
	page := `<html><head>
  <link rel="ALTERNATE" type="Application/RSS+XML" href="https://example.com/upper.xml">
  <link rel="alternate" type="application/json" href="https://example.com/feed.json">
  <link rel="alternate" type="application/feed+json" href="https://example.com/other.json">
  <link rel="alternate" type="text/html" href="https://example.com/fr/">
  <link rel="alternate" href="https://example.com/no-type.xml">
  <link rel="alternate" type="application/atom+xml">
  <link rel="alternate feed" type="application/atom+xml" href="https://example.com/multi.xml">
</head><body>
  <link rel="alternate" type="application/atom+xml" href="https://example.com/in-body.xml">
</body></html>`

	got := DiscoverFeedLinks(page, mustParse(t, "https://example.com/"))

	assert.Equal(t, []domain.FeedLink{
		{URL: "https://example.com/upper.xml", Type: "application/rss+xml"},
		{URL: "https://example.com/feed.json", Type: domain.TypeJSON},
	}, got)
}

func TestDiscoverFeedLinks_MalformedHrefDropped(t *testing.T) {
	page := `<html><head>
  <link rel="alternate" type="application/rss+xml" href="not a url">
  <link rel="alternate" type="application/atom+xml" href="https://example.com/atom.xml">
</head></html>`

	t.Run("without base", func(t *testing.T) {
		got := DiscoverFeedLinks(page, nil)
		assert.Equal(t, []domain.FeedLink{{URL: "https://example.com/atom.xml", Type: domain.TypeAtom}}, got)
	})

	t.Run("with base", func(t *testing.T) {
		got := DiscoverFeedLinks(page, mustParse(t, "https://example.com/"))
		assert.Equal(t, []domain.FeedLink{{URL: "https://example.com/atom.xml", Type: domain.TypeAtom}}, got)
	})

	t.Run("relative href needs a base", func(t *testing.T) {
		assert.Empty(t, DiscoverFeedLinks(bothFeedsPage, nil))
	})
}

func TestDiscoverFeedLinks_YouTubeChannel(t *testing.T) {
	page := `<html><head><title>Channel</title></head>
<body><div id="page"><meta itemprop="channelId" content="x"><div data-channel-external-id="UC_x5XG1OV2P6uZZ5FSM9Ttw"></div>
<div data-channel-external-id="UCsecond"></div></div></body></html>`

	tests := []struct {
		name     string
		base     string
		expected []domain.FeedLink
	}{
		{
			name: "www host",
			base: "https://www.youtube.com/c/GoogleDevelopers",
			expected: []domain.FeedLink{{
				URL:  "https://www.youtube.com/feeds/videos.xml?channel_id=UC_x5XG1OV2P6uZZ5FSM9Ttw",
				Type: domain.TypeAtomShort,
			}},
		},
		{
			name: "bare host",
			base: "https://youtube.com/@googledevs",
			expected: []domain.FeedLink{{
				URL:  "https://www.youtube.com/feeds/videos.xml?channel_id=UC_x5XG1OV2P6uZZ5FSM9Ttw",
				Type: domain.TypeAtomShort,
			}},
		},
		{name: "other host", base: "https://m.youtube.com/c/GoogleDevelopers", expected: []domain.FeedLink{}},
		{name: "not youtube", base: "https://example.com/", expected: []domain.FeedLink{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DiscoverFeedLinks(page, mustParse(t, tt.base)))
		})
	}

	t.Run("advertised links win", func(t *testing.T) {
		withHead := `<html><head><link rel="alternate" type="application/rss+xml" href="/feed"></head>
<body><div data-channel-external-id="UC123"></div></body></html>`
		got := DiscoverFeedLinks(withHead, mustParse(t, "https://www.youtube.com/c/x"))
		assert.Equal(t, []domain.FeedLink{{URL: "https://www.youtube.com/feed", Type: domain.TypeRSS}}, got)
	})

	t.Run("nil base", func(t *testing.T) {
		assert.Empty(t, DiscoverFeedLinks(page, nil))
	})
}

func TestDiscoverFeedLinks_NotHTML(t *testing.T) {
	assert.Empty(t, DiscoverFeedLinks("", nil))
	assert.Empty(t, DiscoverFeedLinks(`{"json": true}`, mustParse(t, "https://example.com/")))
}

func TestSelectBestFeedURL(t *testing.T) {
	base := mustParse(t, "https://example.com/")
	jsonAndRSS := `<html><head>
  <link rel="alternate" type="application/rss+xml" href="/rss.xml">
  <link rel="alternate" type="application/json" href="/feed.json">
</head></html>`

	tests := []struct {
		name     string
		html     string
		prefs    Preference
		expected string
	}{
		{name: "prefer atom", html: bothFeedsPage, prefs: Preference{PreferAtom: true}, expected: "https://example.com/atom.xml"},
		{name: "prefer rss", html: bothFeedsPage, prefs: Preference{PreferRSS: true}, expected: "https://example.com/rss.xml"},
		{name: "atom beats rss when both preferred", html: bothFeedsPage, prefs: Preference{PreferAtom: true, PreferRSS: true}, expected: "https://example.com/atom.xml"},
		{name: "no preference sorts by type", html: bothFeedsPage, expected: "https://example.com/atom.xml"},
		{name: "prefer json", html: jsonAndRSS, prefs: Preference{PreferJSON: true}, expected: "https://example.com/feed.json"},
		{name: "json sorts before rss by type", html: jsonAndRSS, expected: "https://example.com/feed.json"},
		{name: "preferred type absent", html: jsonAndRSS, prefs: Preference{PreferAtom: true}, expected: "https://example.com/feed.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectBestFeedURL(tt.html, base, tt.prefs)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestSelectBestFeedURL_StableForEqualKeys(t *testing.T) {
	page := `<html><head>
  <link rel="alternate" type="application/rss+xml" href="https://example.com/first.xml">
  <link rel="alternate" type="application/rss+xml" href="https://example.com/second.xml">
</head></html>`

	got := SelectBestFeedURL(page, nil, Preference{PreferRSS: true})
	require.NotNil(t, got)
	assert.Equal(t, "https://example.com/first.xml", got.String())
}

func TestSelectBestFeedURL_NoFeeds(t *testing.T) {
	assert.Nil(t, SelectBestFeedURL("<html><head></head><body></body></html>", nil, Preference{PreferAtom: true}))
	assert.Nil(t, SelectBestFeedURL(bothFeedsPage, nil, Preference{PreferAtom: true}))
}

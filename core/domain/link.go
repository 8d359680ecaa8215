// ABOUTME: FeedLink domain model is a candidate feed advertised by an HTML page
// ABOUTME: Types are lowercase MIME-like tokens taken from the page's link elements

package domain

import "strings"

// Link types recognised by discovery
const (
	TypeAtom = "application/atom+xml"
	TypeRSS  = "application/rss+xml"
	TypeJSON = "application/json"

	// TypeAtomShort marks the feed link synthesized for YouTube channel pages
	TypeAtomShort = "atom"
)

// FeedLink is a discovered feed URL together with its advertised type
type FeedLink struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// IsFeedType reports whether an advertised link type denotes a feed.
// Atom and RSS match by substring, JSON must match exactly.
func IsFeedType(linkType string) bool {
	t := strings.ToLower(linkType)
	return strings.Contains(t, "application/atom") ||
		strings.Contains(t, "application/rss") ||
		t == TypeJSON
}

// ABOUTME: Feed domain model is the normalized, format-independent view of a syndication feed
// ABOUTME: RSS, Atom and JSON Feed documents are all converted into this shape

package domain

import (
	"errors"
	"net/url"
)

// Feed represents a parsed feed. It is built once by the feed parser and
// never mutated after being returned.
type Feed struct {
	// Title is the human-readable title of the feed
	Title string `json:"title"`

	// FeedURL is the address the feed was fetched from. Always set.
	FeedURL string `json:"feed_url"`

	// HomePageURL is the website the feed belongs to
	HomePageURL string `json:"home_page_url,omitempty"`

	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Language    string  `json:"language,omitempty"`
	Author      *Author `json:"author,omitempty"`

	// Items contains the feed entries in document order
	Items []FeedItem `json:"items"`
}

// Author represents author information
type Author struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Validate checks that the feed carries an absolute feed URL
func (f *Feed) Validate() error {
	if f.FeedURL == "" {
		return errors.New("feed URL cannot be empty")
	}

	u, err := url.Parse(f.FeedURL)
	if err != nil || u.Scheme == "" {
		return errors.New("feed URL is not a valid absolute URL")
	}

	return nil
}

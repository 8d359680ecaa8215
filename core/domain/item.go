// ABOUTME: FeedItem domain model represents an individual entry within a feed
// ABOUTME: Links on an item are absolute, resolved against the feed's request URL

package domain

import "time"

// FeedItem represents an individual item/entry in a feed
type FeedItem struct {
	// ID is the entry identifier (guid or atom:id), falling back to the URL
	ID string `json:"id"`

	Title string `json:"title,omitempty"`

	// URL is the link to the full article
	URL string `json:"url,omitempty"`

	ContentHTML string `json:"content_html,omitempty"`
	ContentText string `json:"content_text,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Image       string `json:"image,omitempty"`
	Author      string `json:"author,omitempty"`

	Published *time.Time `json:"date_published,omitempty"`
	Updated   *time.Time `json:"date_modified,omitempty"`

	Tags        []string     `json:"tags,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`

	// Comments is the slash:comments count, zero when absent
	Comments int `json:"comments,omitempty"`
}

// Attachment represents an enclosure or JSON Feed attachment
type Attachment struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
	Length   int64  `json:"size_in_bytes,omitempty"`
}

// ABOUTME: FeedError is the single error type returned by the feed resolution core
// ABOUTME: A Kind tells callers whether fetching, link parsing, feed parsing or resolution failed

package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a FeedError
type Kind int

const (
	// KindFetch covers transport failures and non-2xx responses
	KindFetch Kind = iota + 1
	// KindMalformedLink is a link that cannot be made into an absolute URL
	KindMalformedLink
	// KindParse is a body that could not be decoded as a feed
	KindParse
	// KindResolution wraps any failure of a fetch-then-parse flow
	KindResolution
)

// String returns the kind name used in error messages and logs
func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindMalformedLink:
		return "malformed link"
	case KindParse:
		return "parse"
	case KindResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// FeedError represents a failure in fetching, discovering or parsing a feed
type FeedError struct {
	Kind       Kind
	Message    string
	StatusCode int    // set for KindFetch when the server answered with a non-2xx status
	URL        string // URL or link text the failure relates to
	Cause      error
}

// Error implements the error interface
func (e *FeedError) Error() string {
	msg := e.Kind.String() + " error"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.URL != "" {
		msg += fmt.Sprintf(" (%s)", e.URL)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *FeedError) Unwrap() error {
	return e.Cause
}

// NewFetchError wraps a transport failure
func NewFetchError(url string, cause error) *FeedError {
	return &FeedError{Kind: KindFetch, Message: "request failed", URL: url, Cause: cause}
}

// NewStatusError reports a non-2xx response
func NewStatusError(url string, statusCode int) *FeedError {
	return &FeedError{
		Kind:       KindFetch,
		Message:    fmt.Sprintf("unexpected status %d", statusCode),
		StatusCode: statusCode,
		URL:        url,
	}
}

// NewMalformedLinkError reports a link that is not a valid absolute URL
func NewMalformedLinkError(link string, cause error) *FeedError {
	return &FeedError{Kind: KindMalformedLink, Message: "invalid link", URL: link, Cause: cause}
}

// NewParseError reports a body that could not be decoded as a feed
func NewParseError(url string, cause error) *FeedError {
	return &FeedError{Kind: KindParse, Message: "failed to parse feed", URL: url, Cause: cause}
}

// NewResolutionError wraps a failure of a fetch-then-parse flow
func NewResolutionError(url string, cause error) *FeedError {
	return &FeedError{Kind: KindResolution, Message: "failed to resolve feed", URL: url, Cause: cause}
}

// IsFetch checks if any FeedError in the chain is a fetch error
func IsFetch(err error) bool {
	return hasKind(err, KindFetch)
}

// IsMalformedLink checks if any FeedError in the chain is a malformed link error
func IsMalformedLink(err error) bool {
	return hasKind(err, KindMalformedLink)
}

// IsParse checks if any FeedError in the chain is a parse error
func IsParse(err error) bool {
	return hasKind(err, KindParse)
}

// IsResolution checks if any FeedError in the chain is a resolution error
func IsResolution(err error) bool {
	return hasKind(err, KindResolution)
}

// StatusCode returns the HTTP status of the first fetch error in the chain, or 0
func StatusCode(err error) int {
	for err != nil {
		var feedErr *FeedError
		if !errors.As(err, &feedErr) {
			return 0
		}
		if feedErr.Kind == KindFetch && feedErr.StatusCode != 0 {
			return feedErr.StatusCode
		}
		err = feedErr.Cause
	}
	return 0
}

func hasKind(err error, kind Kind) bool {
	for err != nil {
		var feedErr *FeedError
		if !errors.As(err, &feedErr) {
			return false
		}
		if feedErr.Kind == kind {
			return true
		}
		err = feedErr.Cause
	}
	return false
}

// ABOUTME: URL helpers for turning page-relative or sloppy links into absolute URLs
// ABOUTME: Used by discovery and by the feed parser when normalizing item links

package links

import (
	"errors"
	"net/url"
	"strings"
	"unicode"

	corerrors "feeder-resolver/core/errors"
)

// ErrMalformedLink is the cause attached to links that cannot be made absolute
var ErrMalformedLink = errors.New("malformed link")

// StrictURL parses link as an absolute URL. It rejects links containing
// whitespace or control characters and links without a scheme or host.
func StrictURL(link string) (*url.URL, error) {
	if link == "" || strings.IndexFunc(link, invalidLinkRune) >= 0 {
		return nil, corerrors.NewMalformedLinkError(link, ErrMalformedLink)
	}

	u, err := url.Parse(link)
	if err != nil {
		return nil, corerrors.NewMalformedLinkError(link, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, corerrors.NewMalformedLinkError(link, ErrMalformedLink)
	}

	return u, nil
}

// RelativeLinkIntoAbsoluteOrError resolves link against base.
// With a nil base the link must already be absolute.
func RelativeLinkIntoAbsoluteOrError(base *url.URL, link string) (string, error) {
	if base == nil {
		u, err := StrictURL(link)
		if err != nil {
			return "", err
		}
		return u.String(), nil
	}

	if strings.IndexFunc(link, invalidLinkRune) >= 0 {
		return "", corerrors.NewMalformedLinkError(link, ErrMalformedLink)
	}

	ref, err := url.Parse(link)
	if err != nil {
		return "", corerrors.NewMalformedLinkError(link, err)
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme == "" || resolved.Host == "" {
		return "", corerrors.NewMalformedLinkError(link, ErrMalformedLink)
	}

	return resolved.String(), nil
}

// RelativeLinkIntoAbsolute resolves link against base, returning link
// unchanged when it cannot be resolved.
func RelativeLinkIntoAbsolute(base *url.URL, link string) string {
	abs, err := RelativeLinkIntoAbsoluteOrError(base, link)
	if err != nil {
		return link
	}
	return abs
}

// SloppyLinkToStrictURL accepts links as people type them ("example.com/feed",
// "//example.com/feed") and returns an absolute URL, assuming http when the
// scheme is missing.
func SloppyLinkToStrictURL(link string) (*url.URL, error) {
	link = strings.TrimSpace(link)

	if strings.HasPrefix(link, "//") {
		return StrictURL("http:" + link)
	}

	if u, err := StrictURL(link); err == nil {
		return u, nil
	}

	return StrictURL("http://" + link)
}

func invalidLinkRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

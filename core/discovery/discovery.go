// ABOUTME: Feed link discovery finds the feeds an HTML page advertises in its head
// ABOUTME: YouTube channel pages, which advertise none, get their channel feed synthesized

package discovery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"feeder-resolver/core/domain"
	"feeder-resolver/pkg/utils/links"
)

const youtubeChannelFeed = "https://www.youtube.com/feeds/videos.xml?channel_id="

// Preference selects which feed types SelectBestFeedURL ranks first.
// With several set, Atom beats RSS beats JSON.
type Preference struct {
	PreferRSS  bool
	PreferAtom bool
	PreferJSON bool
}

// DiscoverFeedLinks returns the feed links advertised by html, in document
// order. Links are resolved against base; with a nil base only absolute
// links survive. Malformed links are dropped. Never fails: unparsable input
// yields an empty slice.
func DiscoverFeedLinks(html string, base *url.URL) []domain.FeedLink {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []domain.FeedLink{}
	}

	found := make([]domain.FeedLink, 0)
	doc.Find("head [rel]").Each(func(_ int, s *goquery.Selection) {
		if rel, _ := s.Attr("rel"); !strings.EqualFold(rel, "alternate") {
			return
		}
		href, hasHref := s.Attr("href")
		linkType, hasType := s.Attr("type")
		if !hasHref || !hasType || !domain.IsFeedType(linkType) {
			return
		}

		abs, ok := absoluteLink(base, href)
		if !ok {
			return
		}
		found = append(found, domain.FeedLink{URL: abs, Type: strings.ToLower(linkType)})
	})

	if len(found) == 0 && isYouTube(base) {
		if link, ok := youtubeChannelLink(doc); ok {
			found = append(found, link)
		}
	}

	return found
}

// SelectBestFeedURL picks the preferred feed among those html advertises.
// Links are stably ordered by preference, remaining ties broken by type name.
// Returns nil when the page advertises no usable feed.
func SelectBestFeedURL(html string, base *url.URL, prefs Preference) *url.URL {
	found := DiscoverFeedLinks(html, base)

	sort.SliceStable(found, func(i, j int) bool {
		return sortKey(found[i].Type, prefs) < sortKey(found[j].Type, prefs)
	})

	for _, link := range found {
		if u, err := links.SloppyLinkToStrictURL(link.URL); err == nil {
			return u
		}
	}

	return nil
}

// sortKey ranks a link type. Preferred types get "0".."2", which sort ahead
// of any real MIME type.
func sortKey(linkType string, prefs Preference) string {
	t := strings.ToLower(linkType)
	switch {
	case prefs.PreferAtom && strings.Contains(t, "atom"):
		return "0"
	case prefs.PreferRSS && strings.Contains(t, "rss"):
		return "1"
	case prefs.PreferJSON && strings.Contains(t, "json"):
		return "2"
	default:
		return t
	}
}

func absoluteLink(base *url.URL, href string) (string, bool) {
	if base != nil {
		abs, err := links.RelativeLinkIntoAbsoluteOrError(base, href)
		return abs, err == nil
	}

	if _, err := links.StrictURL(href); err != nil {
		return "", false
	}
	u, err := links.SloppyLinkToStrictURL(href)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func isYouTube(base *url.URL) bool {
	if base == nil {
		return false
	}
	host := strings.ToLower(base.Hostname())
	return host == "youtube.com" || host == "www.youtube.com"
}

func youtubeChannelLink(doc *goquery.Document) (domain.FeedLink, bool) {
	el := doc.Find("body[data-channel-external-id], body [data-channel-external-id]").First()
	id, ok := el.Attr("data-channel-external-id")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return domain.FeedLink{}, false
	}
	return domain.FeedLink{
		URL:  youtubeChannelFeed + url.QueryEscape(id),
		Type: domain.TypeAtomShort,
	}, true
}

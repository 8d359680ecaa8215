// ABOUTME: Adapter from gofeed's universal feed model to the domain Feed
// ABOUTME: Resolves item links against the request URL and reads the slash:comments count

package feed

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"feeder-resolver/core/domain"
	"feeder-resolver/pkg/utils/html"
	"feeder-resolver/pkg/utils/links"
	"feeder-resolver/pkg/utils/parse"
	feedtime "feeder-resolver/pkg/utils/time"
)

// toDomain converts a decoded feed. requestURL is used as the base for
// relative links and as the feed URL when the document does not name one.
func toDomain(src *gofeed.Feed, requestURL string) (*domain.Feed, error) {
	base, err := url.Parse(requestURL)
	if err != nil || !base.IsAbs() {
		base = nil
	}

	feed := &domain.Feed{
		Title:       strings.TrimSpace(src.Title),
		Description: src.Description,
		Language:    src.Language,
		HomePageURL: resolve(base, src.Link),
		FeedURL:     resolve(base, src.FeedLink),
		Author:      convertAuthor(src.Author, src.Authors),
		Items:       make([]domain.FeedItem, 0, len(src.Items)),
	}

	if src.Image != nil {
		feed.Icon = resolve(base, src.Image.URL)
	}

	for i, item := range src.Items {
		converted, err := convertItem(item, base)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		feed.Items = append(feed.Items, converted)
	}

	return feed, nil
}

// convertItem converts a single entry
func convertItem(item *gofeed.Item, base *url.URL) (domain.FeedItem, error) {
	feedItem := domain.FeedItem{
		ID:        item.GUID,
		Title:     strings.TrimSpace(item.Title),
		URL:       resolve(base, item.Link),
		Published: feedtime.FirstParsed(item.PublishedParsed, item.Published),
		Updated:   feedtime.FirstParsed(item.UpdatedParsed, item.Updated),
		Tags:      item.Categories,
	}

	if feedItem.ID == "" {
		feedItem.ID = feedItem.URL
	}

	// RSS puts the body in description unless content:encoded is present
	if item.Content != "" {
		feedItem.ContentHTML = item.Content
		feedItem.Summary = html.StripHTML(item.Description)
	} else {
		feedItem.ContentHTML = item.Description
	}
	feedItem.ContentText = html.StripHTML(feedItem.ContentHTML)

	if author := convertAuthor(item.Author, item.Authors); author != nil {
		feedItem.Author = author.Name
	}

	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		feedItem.Attachments = append(feedItem.Attachments, domain.Attachment{
			URL:      resolve(base, enc.URL),
			MimeType: enc.Type,
			Length:   parse.Int64OrZero(enc.Length),
		})
	}

	feedItem.Image = findImage(item, feedItem.Attachments, base)

	comments, err := slashComments(item)
	if err != nil {
		return domain.FeedItem{}, err
	}
	feedItem.Comments = comments

	return feedItem, nil
}

// slashComments reads the slash:comments extension. The value must be an
// integer when the element is present, so an empty element is an error.
func slashComments(item *gofeed.Item) (int, error) {
	values := item.Extensions["slash"]["comments"]
	if len(values) == 0 {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(values[0].Value))
}

// findImage picks the entry image, then the first image attachment
func findImage(item *gofeed.Item, attachments []domain.Attachment, base *url.URL) string {
	if item.Image != nil && item.Image.URL != "" {
		return resolve(base, item.Image.URL)
	}

	for _, a := range attachments {
		if strings.HasPrefix(a.MimeType, "image/") {
			return a.URL
		}
	}

	return ""
}

func convertAuthor(author *gofeed.Person, authors []*gofeed.Person) *domain.Author {
	if author == nil && len(authors) > 0 {
		author = authors[0]
	}
	if author == nil || (author.Name == "" && author.Email == "") {
		return nil
	}
	return &domain.Author{
		Name:  author.Name,
		Email: author.Email,
	}
}

func resolve(base *url.URL, link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	return links.RelativeLinkIntoAbsolute(base, link)
}

// ABOUTME: Feed parser turns a fetched response body into a domain Feed
// ABOUTME: XML bodies get one retry with empty slash:comments elements stripped when the count is unreadable

package feed

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"feeder-resolver/core/domain"
	corerrors "feeder-resolver/core/errors"
	"feeder-resolver/core/interfaces"
)

// Parser decodes feed documents. It holds no per-call state and is safe
// for concurrent use.
type Parser struct {
	xmlDecoder  Decoder
	jsonDecoder Decoder
	logger      interfaces.Logger
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithXMLDecoder replaces the RSS/Atom decoder
func WithXMLDecoder(d Decoder) ParserOption {
	return func(p *Parser) {
		p.xmlDecoder = d
	}
}

// WithJSONDecoder replaces the JSON Feed decoder
func WithJSONDecoder(d Decoder) ParserOption {
	return func(p *Parser) {
		p.jsonDecoder = d
	}
}

// WithLogger sets the logger used to report workaround retries
func WithLogger(logger interfaces.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a parser backed by gofeed unless decoders are overridden
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		xmlDecoder:  XMLDecoder{},
		jsonDecoder: JSONDecoder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseResponseBody parses body according to contentType. requestURL is the
// URL the body was fetched from; it becomes the feed URL when the document
// does not declare one and is the base for relative item links.
func (p *Parser) ParseResponseBody(contentType string, body []byte, requestURL string) (*domain.Feed, error) {
	var (
		feed *domain.Feed
		err  error
	)

	switch Classify(contentType) {
	case FormatJSON:
		feed, err = p.attempt(p.jsonDecoder, body, requestURL)
	default:
		feed, err = p.parseXML(body, requestURL)
	}
	if err != nil {
		return nil, corerrors.NewParseError(requestURL, err)
	}

	if feed.FeedURL == "" {
		feed.FeedURL = requestURL
	}

	if err := feed.Validate(); err != nil {
		return nil, corerrors.NewParseError(requestURL, err)
	}

	return feed, nil
}

// parseXML runs the XML decoder, retrying exactly once on a numeric fault
// with empty <slash:comments/> elements removed from the body.
func (p *Parser) parseXML(body []byte, requestURL string) (*domain.Feed, error) {
	enc := detectEncoding(body)

	feed, err := p.attempt(p.xmlDecoder, body, requestURL)
	if err == nil || !isNumericFault(err) {
		return feed, err
	}

	p.logInfo("Retrying feed parse without empty slash:comments", map[string]interface{}{
		"url":      requestURL,
		"encoding": enc.name,
		"error":    err.Error(),
	})

	cleaned, rewriteErr := stripEmptySlashComments(body, enc)
	if rewriteErr != nil {
		return nil, fmt.Errorf("rewrite body as %s: %w", enc.name, rewriteErr)
	}

	return p.attempt(p.xmlDecoder, cleaned, requestURL)
}

// attempt runs one decode and conversion. Decoder panics are returned as errors.
func (p *Parser) attempt(decoder Decoder, body []byte, requestURL string) (feed *domain.Feed, err error) {
	defer func() {
		if r := recover(); r != nil {
			feed = nil
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	decoded, err := decoder.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if decoded == nil {
		return nil, ErrUnknownFeedType
	}

	return toDomain(decoded, requestURL)
}

// isNumericFault reports whether a number could not be read somewhere in
// the document
func isNumericFault(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr)
}

func (p *Parser) logInfo(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, fields)
	}
}

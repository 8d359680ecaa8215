// ABOUTME: Decoders turn raw feed bytes into gofeed's universal feed model
// ABOUTME: XML bodies are routed to the RSS or Atom parser, JSON bodies to the JSON Feed parser

package feed

import (
	"bytes"
	"errors"
	"io"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	jsonfeed "github.com/mmcdole/gofeed/json"
	"github.com/mmcdole/gofeed/rss"
)

var (
	// ErrEmptyBody is returned when there is nothing to decode
	ErrEmptyBody = errors.New("empty feed body")

	// ErrUnknownFeedType is returned when an XML body is neither RSS nor Atom
	ErrUnknownFeedType = errors.New("unknown feed type")
)

// Decoder decodes a feed document
type Decoder interface {
	Decode(r io.Reader) (*gofeed.Feed, error)
}

// DecoderFunc adapts a function to the Decoder interface
type DecoderFunc func(r io.Reader) (*gofeed.Feed, error)

// Decode calls f(r)
func (f DecoderFunc) Decode(r io.Reader) (*gofeed.Feed, error) {
	return f(r)
}

// XMLDecoder decodes RSS (0.9x, 1.0, 2.0) and Atom documents
type XMLDecoder struct{}

// Decode implements Decoder
func (XMLDecoder) Decode(r io.Reader) (*gofeed.Feed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyBody
	}

	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeRSS:
		parsed, err := (&rss.Parser{}).Parse(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return (&gofeed.DefaultRSSTranslator{}).Translate(parsed)
	case gofeed.FeedTypeAtom:
		parsed, err := (&atom.Parser{}).Parse(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return (&gofeed.DefaultAtomTranslator{}).Translate(parsed)
	default:
		return nil, ErrUnknownFeedType
	}
}

// JSONDecoder decodes JSON Feed documents
type JSONDecoder struct{}

// Decode implements Decoder
func (JSONDecoder) Decode(r io.Reader) (*gofeed.Feed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyBody
	}

	parsed, err := (&jsonfeed.Parser{}).Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return (&gofeed.DefaultJSONTranslator{}).Translate(parsed)
}

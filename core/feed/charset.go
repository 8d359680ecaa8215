// ABOUTME: Character encoding detection and the empty slash:comments rewrite for XML feeds
// ABOUTME: The rewrite round-trips the body through the detected charset so the prolog stays truthful

package feed

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const emptySlashComments = "<slash:comments/>"

var xmlDeclEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*?encoding\s*=\s*["']([A-Za-z0-9._:\-]+)["']`)

// detectedEncoding is the best guess at an XML body's character set
type detectedEncoding struct {
	encoding encoding.Encoding
	name     string
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16BEBOM = []byte{0xFE, 0xFF}
	utf16LEBOM = []byte{0xFF, 0xFE}
)

// detectEncoding guesses the charset of an XML body the way the XML decoder
// does: a byte order mark wins, then the XML declaration, then UTF-8. The
// Content-Type charset is ignored since the first decode ignored it too.
func detectEncoding(body []byte) detectedEncoding {
	switch {
	case bytes.HasPrefix(body, utf8BOM):
		return detectedEncoding{encoding: unicode.UTF8BOM, name: "utf-8"}
	case bytes.HasPrefix(body, utf16BEBOM):
		return detectedEncoding{encoding: unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), name: "utf-16be"}
	case bytes.HasPrefix(body, utf16LEBOM):
		return detectedEncoding{encoding: unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), name: "utf-16le"}
	}

	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	if m := xmlDeclEncoding.FindSubmatch(head); m != nil {
		if enc, ok := lookupEncoding(string(m[1])); ok {
			return enc
		}
	}

	return detectedEncoding{encoding: unicode.UTF8, name: "utf-8"}
}

func lookupEncoding(label string) (detectedEncoding, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return detectedEncoding{}, false
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return detectedEncoding{}, false
	}
	return detectedEncoding{encoding: enc, name: name}, true
}

// stripEmptySlashComments decodes body as text, removes every empty
// <slash:comments/> element and encodes the result back into the same charset.
func stripEmptySlashComments(body []byte, enc detectedEncoding) ([]byte, error) {
	text, err := enc.encoding.NewDecoder().Bytes(body)
	if err != nil {
		return nil, err
	}

	cleaned := strings.ReplaceAll(string(text), emptySlashComments, "")

	return enc.encoding.NewEncoder().Bytes([]byte(cleaned))
}

// ABOUTME: Content-Type classification deciding which decoder handles a response body
// ABOUTME: Anything mentioning json goes to the JSON Feed decoder, everything else is XML

package feed

import "strings"

// Format is the decoder family selected for a response body
type Format int

const (
	// FormatXML covers RSS and Atom documents
	FormatXML Format = iota
	// FormatJSON covers JSON Feed documents
	FormatJSON
)

// String implements fmt.Stringer
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "xml"
}

// Classify selects the decoder family from a Content-Type header value.
// A missing header is treated as XML.
func Classify(contentType string) Format {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return FormatJSON
	}
	return FormatXML
}

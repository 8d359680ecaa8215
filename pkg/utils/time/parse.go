// ABOUTME: Fallback date parsing for feed timestamps the feed library could not read
// ABOUTME: Covers the RFC 822 and ISO 8601 variants that show up in real feeds

package time

import (
	"strings"
	"time"
)

// Layouts seen in feeds in the wild, tried in order
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ParseFlexibleTime attempts to parse a time string using various formats
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

// FirstParsed returns parsed when set, otherwise tries raw.
// Returns nil when neither yields a time.
func FirstParsed(parsed *time.Time, raw string) *time.Time {
	if parsed != nil {
		t := *parsed
		return &t
	}
	if t := ParseFlexibleTime(raw); !t.IsZero() {
		return &t
	}
	return nil
}

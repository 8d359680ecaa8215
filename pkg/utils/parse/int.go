// ABOUTME: Lenient integer parsing for numeric feed attributes
// ABOUTME: Enclosure lengths and similar fields are often blank or junk

package parse

import (
	"strconv"
	"strings"
)

// Int64OrZero parses s as a base-10 integer, returning 0 if parsing fails
func Int64OrZero(s string) int64 {
	v, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v
}

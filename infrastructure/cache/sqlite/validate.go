// ABOUTME: Key and value validation for the SQLite cache
// ABOUTME: Keys are request URLs, so limits are sized for long query strings

package sqlite

import (
	"errors"
	"fmt"
	"strings"
)

var (
	maxKeyLength   = 4096
	maxValueLength = 32 * 1024 * 1024
)

// ValidateKey validates a cache key
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}

	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	return nil
}

// ValidateValue validates a cache value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}

	return nil
}

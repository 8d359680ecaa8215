// ABOUTME: Error types and handling for the resolver library
// ABOUTME: Configuration failures get an Error; fetch and parse failures stay FeedErrors

package feedresolver

import (
	"errors"
	"fmt"

	corerrors "feeder-resolver/core/errors"
)

// ErrClientClosed is returned by calls made after Close
var ErrClientClosed = errors.New("feed resolver client is closed")

// FeedError is the error returned by fetch, discovery and parse operations
type FeedError = corerrors.FeedError

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeValidation indicates an invalid option value
	ErrorTypeValidation ErrorType = "validation"
)

// Error represents a structured error from building or configuring the client
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause sets the underlying cause
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds a context value
func (e *Error) WithContext(key string, value interface{}) *Error {
	e.Context[key] = value
	return e
}

// IsConfigurationError reports whether err is a configuration error
func IsConfigurationError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrorTypeConfiguration
}

// IsFetchError reports whether err was caused by a network failure or a non-2xx response
func IsFetchError(err error) bool {
	return corerrors.IsFetch(err)
}

// IsParseError reports whether err was caused by a body that is not a feed
func IsParseError(err error) bool {
	return corerrors.IsParse(err)
}

// IsResolutionError reports whether err came from a resolve operation
func IsResolutionError(err error) bool {
	return corerrors.IsResolution(err)
}

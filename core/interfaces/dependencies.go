// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Discovery and resolution services receive their collaborators through it

package interfaces

// Dependencies holds all external dependencies required by the core services
type Dependencies struct {
	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}

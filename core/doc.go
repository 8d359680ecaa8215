// Package core contains the feed resolution logic.
// It does no I/O of its own: fetching goes through interfaces.HTTPClient and
// logging through interfaces.Logger, both injected.
//
// The core package is organized into several sub-packages:
//
// - domain: Feed, FeedItem and FeedLink models
// - discovery: finds the feeds an HTML page advertises
// - feed: decodes RSS, Atom and JSON Feed bodies into a Feed
// - resolver: chains fetch, discovery and parsing
// - errors: FeedError and its kinds
// - interfaces: contracts for external dependencies (cache, HTTP, logger)
//
// # Usage Example
//
//	import (
//	    "feeder-resolver/core/interfaces"
//	    "feeder-resolver/core/resolver"
//	)
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	svc := resolver.NewService(deps, nil)
//
//	// A landing page resolves to the feed it advertises
//	feed, err := svc.ResolveURL(ctx, "https://example.com/")
package core

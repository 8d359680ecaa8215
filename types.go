// ABOUTME: Public names for the resolver's domain types
// ABOUTME: Aliases keep library users away from the internal package layout

package feedresolver

import (
	"feeder-resolver/core/discovery"
	"feeder-resolver/core/domain"
	"feeder-resolver/core/interfaces"
)

type (
	// Feed is a parsed feed
	Feed = domain.Feed
	// FeedItem is one entry of a Feed
	FeedItem = domain.FeedItem
	// FeedLink is a feed advertised by a page
	FeedLink = domain.FeedLink
	// Preference orders advertised feed types
	Preference = discovery.Preference
	// Response is a fetched resource
	Response = interfaces.Response
)

// Common preferences for SelectBestFeedURL
var (
	PreferRSS  = Preference{PreferRSS: true}
	PreferAtom = Preference{PreferAtom: true}
	PreferJSON = Preference{PreferJSON: true}
)

// ForceNetwork makes a Fetch revalidate with the origin server
var ForceNetwork = interfaces.WithForceNetwork

package constants

const (
	ListingEventsExchange     = "listing_events"
	ListingEventsExchangeType = "topic"

	RoutingKeySearchPerformed = "listing.search.performed"
)

// Package ebay provides the marketplace listing client: a live eBay Finding
// API integration that degrades to deterministic synthetic data on any
// failure, so callers always receive a usable result set.
package ebay

import "context"

// Listing is a normalized marketplace record, either an active offer or a
// completed sale. EndedAt carries the listing end time for active items and
// the sold date for completed ones, as an ISO-8601 string.
type Listing struct {
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	URL       string  `json:"url"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	EndedAt   string  `json:"timestamp"`
	Condition string  `json:"condition,omitempty"`
}

// Searcher is the listing lookup capability consumed by the market and
// wishlist services. Implementations never return an error: any upstream
// failure is absorbed and replaced with synthetic data.
type Searcher interface {
	// SearchActive returns active listings for a query term, optionally
	// constrained by a maximum price.
	SearchActive(ctx context.Context, term string, maxPrice *float64) []Listing

	// SearchCompleted returns completed sales accumulated across the given
	// query terms, most recent first.
	SearchCompleted(ctx context.Context, terms []string) []Listing
}

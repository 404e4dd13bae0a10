package transport

import "collector_portal_backend/internal/ebay"

// MarketAnalysisRequest is the POST /market-analysis body. ItemName and
// Category are mandatory; everything else refines the generated search terms.
type MarketAnalysisRequest struct {
	ItemName     string `json:"itemName" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Manufacturer string `json:"manufacturer"`
	Pattern      string `json:"pattern"`
	Description  string `json:"description"`
	PhotoURL     string `json:"photoUrl"`
}

// PriceRange is the observed min/max across the sampled sales.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MarketEstimate is the price estimate returned to the caller.
//
// AveragePrice is the most recent sale price, not an arithmetic mean. The
// field name is kept for wire compatibility with existing clients.
type MarketEstimate struct {
	AveragePrice    float64        `json:"averagePrice"`
	RecentSales     []ebay.Listing `json:"recentSales"`
	PriceRange      PriceRange     `json:"priceRange"`
	Confidence      string         `json:"confidence"`
	SearchTermsUsed []string       `json:"searchTermsUsed"`
}

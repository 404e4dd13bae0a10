package service

import (
	"math"

	"collector_portal_backend/internal/ebay"
	"collector_portal_backend/internal/market/transport"
)

// Confidence grades attached to a market estimate.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

const (
	// maxRecentSales caps how many sales are echoed back in the estimate.
	maxRecentSales = 10
	// highConfidenceSpread is the price variation threshold below which a
	// well-sampled estimate is graded high.
	highConfidenceSpread = 0.3
)

// Analyze aggregates sold listings into a price estimate. The caller supplies
// sales sorted most-recent-first; the point estimate is the most recent sale
// price, a deliberate recency policy rather than an arithmetic mean. The
// caller attaches SearchTermsUsed.
func Analyze(sales []ebay.Listing) transport.MarketEstimate {
	if len(sales) == 0 {
		return transport.MarketEstimate{
			AveragePrice: 0,
			RecentSales:  []ebay.Listing{},
			PriceRange:   transport.PriceRange{Min: 0, Max: 0},
			Confidence:   ConfidenceLow,
		}
	}

	latest := sales[0].Price
	min, max := sales[0].Price, sales[0].Price
	for _, sale := range sales[1:] {
		if sale.Price < min {
			min = sale.Price
		}
		if sale.Price > max {
			max = sale.Price
		}
	}

	confidence := ConfidenceLow
	switch {
	case len(sales) >= 5:
		confidence = ConfidenceMedium
		if latest > 0 && (max-min)/latest < highConfidenceSpread {
			confidence = ConfidenceHigh
		}
	case len(sales) >= 3:
		confidence = ConfidenceMedium
	}

	recent := sales
	if len(recent) > maxRecentSales {
		recent = recent[:maxRecentSales]
	}

	return transport.MarketEstimate{
		AveragePrice: round2(latest),
		RecentSales:  recent,
		PriceRange:   transport.PriceRange{Min: round2(min), Max: round2(max)},
		Confidence:   confidence,
	}
}

// round2 rounds half-up to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

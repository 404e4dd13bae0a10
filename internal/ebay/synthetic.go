package ebay

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

// Synthetic listings keep the UI populated whenever the live integration is
// unavailable or fails. Generation is seeded by the query term, so the same
// term always yields the same item IDs and prices; only timestamps depend on
// the supplied clock. Stable URLs matter: the wishlist monitor dedupes on
// them, so repeated runs against synthetic data must not re-record listings.

var (
	syntheticPrefixes = []string{"Vintage", "Antique", "Rare", "Beautiful"}
	syntheticSuffixes = []string{
		"Excellent Condition",
		"Estate Find",
		"No Chips or Cracks",
		"Collectible",
	}
	syntheticConditions = []string{"Used", "Excellent", "Very Good", "Good"}
)

// SyntheticActive fabricates 2-3 plausible active listings for a term.
// Prices stay under the ceiling when one is given.
func SyntheticActive(term string, maxPrice *float64, now time.Time) []Listing {
	ceiling := syntheticCeiling(term, maxPrice)
	return synthesize(term, ceiling, false, now)
}

// SyntheticSold fabricates 2-3 plausible completed sales for a term.
func SyntheticSold(term string, now time.Time) []Listing {
	ceiling := syntheticCeiling(term, nil)
	return synthesize(term, ceiling, true, now)
}

func syntheticCeiling(term string, maxPrice *float64) float64 {
	if maxPrice != nil && *maxPrice > 0 {
		return *maxPrice
	}
	// Stable per-term baseline in a plausible collectible range.
	return 25 + float64(termSeed(term)%100)
}

func synthesize(term string, ceiling float64, sold bool, now time.Time) []Listing {
	r := rand.New(rand.NewSource(int64(termSeed(term))))
	count := 2 + r.Intn(2)

	listings := make([]Listing, 0, count)
	for i := 0; i < count; i++ {
		price := math.Round(ceiling*(0.35+0.55*r.Float64())*100) / 100
		if price <= 0 {
			price = 0.99
		}
		itemID := 100000000000 + r.Int63n(900000000000)

		var endedAt time.Time
		if sold {
			endedAt = now.AddDate(0, 0, -(i*3 + 1))
		} else {
			endedAt = now.AddDate(0, 0, i+2)
		}

		listings = append(listings, Listing{
			Title:     fmt.Sprintf("%s %s %s", syntheticPrefixes[r.Intn(len(syntheticPrefixes))], term, syntheticSuffixes[r.Intn(len(syntheticSuffixes))]),
			Price:     price,
			URL:       fmt.Sprintf("https://www.ebay.com/itm/%d", itemID),
			ImageURL:  fmt.Sprintf("https://i.ebayimg.com/images/g/%d/s-l500.jpg", itemID),
			EndedAt:   endedAt.UTC().Format(time.RFC3339),
			Condition: syntheticConditions[r.Intn(len(syntheticConditions))],
		})
	}

	return listings
}

func termSeed(term string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(term))
	return h.Sum32()
}

package service

import (
	"testing"

	"collector_portal_backend/internal/ebay"
)

func salesWithPrices(prices ...float64) []ebay.Listing {
	sales := make([]ebay.Listing, len(prices))
	for i, p := range prices {
		sales[i] = ebay.Listing{Title: "sale", Price: p, URL: "https://www.ebay.com/itm/1"}
	}
	return sales
}

func TestAnalyze_Empty(t *testing.T) {
	est := Analyze(nil)

	if est.AveragePrice != 0 {
		t.Fatalf("expected averagePrice 0, got %v", est.AveragePrice)
	}
	if est.RecentSales == nil || len(est.RecentSales) != 0 {
		t.Fatalf("expected empty recentSales slice, got %v", est.RecentSales)
	}
	if est.PriceRange.Min != 0 || est.PriceRange.Max != 0 {
		t.Fatalf("expected zero price range, got %+v", est.PriceRange)
	}
	if est.Confidence != ConfidenceLow {
		t.Fatalf("expected low confidence, got %s", est.Confidence)
	}
}

func TestAnalyze_PointEstimateIsMostRecentSaleNotMean(t *testing.T) {
	// Most recent = 100; the mean of all six is 100.83. The estimate must be
	// the recent sale price, guarding against "fixing" this to a mean.
	est := Analyze(salesWithPrices(100, 105, 98, 102, 99, 101))

	if est.AveragePrice != 100.00 {
		t.Fatalf("expected averagePrice 100.00 (most recent sale), got %v", est.AveragePrice)
	}
	if est.PriceRange.Min != 98 || est.PriceRange.Max != 105 {
		t.Fatalf("expected range {98,105}, got %+v", est.PriceRange)
	}
	// variation = (105-98)/100 = 0.07 < 0.3
	if est.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence, got %s", est.Confidence)
	}
}

func TestAnalyze_EqualPricesHighConfidence(t *testing.T) {
	est := Analyze(salesWithPrices(25, 25, 25, 25, 25))

	if est.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence for zero variation, got %s", est.Confidence)
	}
}

func TestAnalyze_WideSpreadMediumConfidence(t *testing.T) {
	// variation = (90-10)/50 = 1.6 >= 0.3
	est := Analyze(salesWithPrices(50, 10, 90, 45, 55))

	if est.Confidence != ConfidenceMedium {
		t.Fatalf("expected medium confidence for wide spread, got %s", est.Confidence)
	}
}

func TestAnalyze_ThreeSalesAlwaysMedium(t *testing.T) {
	est := Analyze(salesWithPrices(10, 500, 1000))

	if est.Confidence != ConfidenceMedium {
		t.Fatalf("expected medium confidence for 3 sales, got %s", est.Confidence)
	}

	est = Analyze(salesWithPrices(10, 10, 10, 10))
	if est.Confidence != ConfidenceMedium {
		t.Fatalf("expected medium confidence for 4 sales, got %s", est.Confidence)
	}
}

func TestAnalyze_FewSalesLowConfidence(t *testing.T) {
	if est := Analyze(salesWithPrices(42)); est.Confidence != ConfidenceLow {
		t.Fatalf("expected low confidence for 1 sale, got %s", est.Confidence)
	}
	if est := Analyze(salesWithPrices(42, 44)); est.Confidence != ConfidenceLow {
		t.Fatalf("expected low confidence for 2 sales, got %s", est.Confidence)
	}
}

func TestAnalyze_Rounding(t *testing.T) {
	est := Analyze(salesWithPrices(33.333, 44.446, 22.224))

	if est.AveragePrice != 33.33 {
		t.Fatalf("expected 33.33, got %v", est.AveragePrice)
	}
	if est.PriceRange.Min != 22.22 || est.PriceRange.Max != 44.45 {
		t.Fatalf("expected rounded range {22.22,44.45}, got %+v", est.PriceRange)
	}
}

func TestAnalyze_RecentSalesCappedAtTenInOrder(t *testing.T) {
	prices := make([]float64, 14)
	for i := range prices {
		prices[i] = float64(10 + i)
	}
	est := Analyze(salesWithPrices(prices...))

	if len(est.RecentSales) != 10 {
		t.Fatalf("expected 10 recent sales, got %d", len(est.RecentSales))
	}
	for i, sale := range est.RecentSales {
		if sale.Price != float64(10+i) {
			t.Fatalf("recentSales order changed at %d: %v", i, sale.Price)
		}
	}
}

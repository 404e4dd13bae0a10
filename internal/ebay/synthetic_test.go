package ebay

import (
	"testing"
	"time"
)

func TestSyntheticActive_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := SyntheticActive("fenton milk glass", nil, now)
	second := SyntheticActive("fenton milk glass", nil, now)

	if len(first) != len(second) {
		t.Fatalf("expected stable count, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("listing %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSyntheticActive_CountAndPrices(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ceiling := 40.0

	listings := SyntheticActive("jadite mixing bowl", &ceiling, now)

	if len(listings) < 2 || len(listings) > 3 {
		t.Fatalf("expected 2-3 listings, got %d", len(listings))
	}
	for _, l := range listings {
		if l.Price <= 0 {
			t.Fatalf("synthetic price must be positive, got %v", l.Price)
		}
		if l.Price > ceiling {
			t.Fatalf("price %v exceeds ceiling %v", l.Price, ceiling)
		}
		if l.URL == "" || l.Title == "" {
			t.Fatalf("listing missing url or title: %+v", l)
		}
		if _, err := time.Parse(time.RFC3339, l.EndedAt); err != nil {
			t.Fatalf("timestamp %q not RFC3339: %v", l.EndedAt, err)
		}
	}
}

func TestSyntheticSold_StableURLsPerTerm(t *testing.T) {
	a := SyntheticSold("hobnail vase", time.Now())
	b := SyntheticSold("hobnail vase", time.Now().Add(time.Hour))

	if len(a) != len(b) {
		t.Fatalf("expected stable count across clock values")
	}
	for i := range a {
		if a[i].URL != b[i].URL {
			t.Fatalf("URLs must be stable per term: %s vs %s", a[i].URL, b[i].URL)
		}
	}
}

func TestSynthetic_DifferentTermsDiffer(t *testing.T) {
	now := time.Now()
	a := SyntheticSold("carnival glass bowl", now)
	b := SyntheticSold("depression glass plate", now)

	if a[0].URL == b[0].URL {
		t.Fatal("different terms should produce different listings")
	}
}

package service

import (
	"context"
	"strings"
	"time"

	"collector_portal_backend/internal/ebay"
	"collector_portal_backend/internal/wishlist/repository"
	"collector_portal_backend/internal/wishlist/transport"
	"collector_portal_backend/platform/apperr"
	"collector_portal_backend/platform/logger"
)

// platformEbay is stamped on every found listing this monitor records.
const platformEbay = "ebay"

// Monitor checks tracked wishlist entries against active marketplace listings
// and persists matches not seen before. Runs are strictly sequential: the
// listing client bounds the outbound call rate, and per-item failures never
// abort a batch.
type Monitor struct {
	store  repository.Store
	client ebay.Searcher
	log    *logger.Logger
	now    func() time.Time
}

// NewMonitor creates the wishlist monitor.
func NewMonitor(store repository.Store, client ebay.Searcher, log *logger.Logger) *Monitor {
	return &Monitor{
		store:  store,
		client: client,
		log:    log,
		now:    time.Now,
	}
}

// WithClock substitutes the monitor clock. Used by tests.
func (m *Monitor) WithClock(now func() time.Time) *Monitor {
	m.now = now
	return m
}

// ProcessOne checks a single wishlist item and returns how many new listings
// were recorded. Items with a blank search term are skipped. Individual
// store failures are logged and skipped; the item's last-checked stamp is
// updated regardless of outcome.
func (m *Monitor) ProcessOne(ctx context.Context, item repository.WishlistItem) int {
	term := strings.TrimSpace(item.SearchTerm)
	if term == "" {
		return 0
	}

	listings := m.client.SearchActive(ctx, term, item.DesiredMaxPrice)

	newCount := 0
	for _, listing := range listings {
		exists, err := m.store.HasFoundListing(ctx, item.ID, listing.URL)
		if err != nil {
			m.log.DatabaseError("has_found_listing", err)
			continue
		}
		if exists {
			continue
		}

		err = m.store.InsertFoundListing(ctx, repository.CreateFoundListingParams{
			WishlistItemID: item.ID,
			Platform:       platformEbay,
			Title:          listing.Title,
			Price:          listing.Price,
			URL:            listing.URL,
			ImageURL:       listing.ImageURL,
			Condition:      listing.Condition,
			ListingEndedAt: listing.EndedAt,
			FoundAt:        m.now(),
		})
		if err != nil {
			// A concurrent run recording the same pair is benign.
			if !apperr.Is(err, apperr.KindConflict) {
				m.log.DatabaseError("insert_found_listing", err)
			}
			continue
		}
		newCount++
	}

	if err := m.store.TouchLastChecked(ctx, item.ID, m.now()); err != nil {
		m.log.DatabaseError("touch_last_checked", err)
	}

	m.log.MonitorEvent(item.ID.String(), newCount)
	return newCount
}

// RunBatch processes either the single identified item or every active item
// with a non-empty search term, strictly sequentially, and returns a summary
// report. A missing explicit item yields NotFound; per-item failures
// contribute a zero count without aborting the batch.
func (m *Monitor) RunBatch(ctx context.Context, itemID *string) (*transport.MonitorReport, error) {
	items, err := m.selectItems(ctx, itemID)
	if err != nil {
		return nil, err
	}

	report := &transport.MonitorReport{
		Success:     true,
		Results:     []transport.MonitorItemResult{},
		ProcessedAt: m.now(),
	}

	for _, item := range items {
		count := m.ProcessOne(ctx, item)
		report.ItemsProcessed++
		report.TotalNewListings += count
		report.Results = append(report.Results, transport.MonitorItemResult{
			WishlistItemID: item.ID.String(),
			ItemName:       item.ItemName,
			SearchTerm:     item.SearchTerm,
			NewListings:    count,
		})
	}

	return report, nil
}

func (m *Monitor) selectItems(ctx context.Context, itemID *string) ([]repository.WishlistItem, error) {
	if itemID != nil && strings.TrimSpace(*itemID) != "" {
		id, err := parseItemID(*itemID)
		if err != nil {
			return nil, err
		}
		item, err := m.store.GetItem(ctx, id)
		if err != nil {
			return nil, err
		}
		return []repository.WishlistItem{*item}, nil
	}

	return m.store.ListActiveItems(ctx)
}

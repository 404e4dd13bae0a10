package ebay

import (
	"context"
	"time"

	"collector_portal_backend/platform/logger"
	"collector_portal_backend/platform/throttle"
)

const (
	// maxCompletedTerms caps how many query terms are issued per completed
	// search, to stay within the Finding API call budget.
	maxCompletedTerms = 3
	// maxCompletedResults caps the accumulated completed-sale result set.
	maxCompletedResults = 10
)

// Client implements Searcher. It attempts the live Finding API when an app ID
// is configured and falls back to synthetic data on any failure, so callers
// never see a hard error from this component.
type Client struct {
	live  *findingClient
	pacer throttle.Pacer
	log   *logger.Logger
	now   func() time.Time
}

// Option customizes client construction.
type Option func(*Client)

// WithDoer substitutes the HTTP transport. Used by tests.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		if c.live != nil {
			c.live.http = doer
		}
	}
}

// WithBaseURL points the live client at a different endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if c.live != nil {
			c.live.baseURL = baseURL
		}
	}
}

// WithClock substitutes the clock used for synthetic timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a listing client. An empty appID disables the live
// integration entirely; that is a supported configuration, not an error.
func NewClient(appID string, pacer throttle.Pacer, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		pacer: pacer,
		log:   log,
		now:   time.Now,
	}
	if appID != "" {
		c.live = newFindingClient(appID, nil)
	}
	if c.pacer == nil {
		c.pacer = throttle.NopPacer{}
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchActive returns active listings matching the term, optionally
// constrained by a maximum price.
func (c *Client) SearchActive(ctx context.Context, term string, maxPrice *float64) []Listing {
	if c.live == nil {
		// No credentials configured. Degrading silently is intentional.
		c.log.Debug("ebay live search disabled, using synthetic data", "term", term)
		return SyntheticActive(term, maxPrice, c.now())
	}

	listings, err := c.live.findActive(ctx, term, maxPrice)
	if err != nil {
		c.log.UpstreamFallback(opFindActive, term, err.Error())
		return SyntheticActive(term, maxPrice, c.now())
	}

	return listings
}

// SearchCompleted accumulates completed sales across the first three terms,
// issuing one call per term strictly sequentially with pacing between calls.
// If no live results come back for any term, one synthetic batch covers the
// whole request.
func (c *Client) SearchCompleted(ctx context.Context, terms []string) []Listing {
	capped := terms
	if len(capped) > maxCompletedTerms {
		capped = capped[:maxCompletedTerms]
	}

	if c.live == nil {
		c.log.Debug("ebay live search disabled, using synthetic data", "terms", len(capped))
		return c.syntheticBatch(capped)
	}

	var all []Listing
	for _, term := range capped {
		if err := c.pacer.Wait(ctx); err != nil {
			break
		}

		listings, err := c.live.findCompleted(ctx, term)
		if err != nil {
			c.log.UpstreamFallback(opFindCompleted, term, err.Error())
			continue
		}
		all = append(all, listings...)
	}

	if len(all) == 0 {
		return c.syntheticBatch(capped)
	}

	if len(all) > maxCompletedResults {
		all = all[:maxCompletedResults]
	}
	return all
}

func (c *Client) syntheticBatch(terms []string) []Listing {
	if len(terms) == 0 {
		return []Listing{}
	}
	return SyntheticSold(terms[0], c.now())
}

var _ Searcher = (*Client)(nil)

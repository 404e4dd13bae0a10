package service

import (
	"context"
	"strings"

	"collector_portal_backend/internal/ebay"
	"collector_portal_backend/internal/market/transport"
	"collector_portal_backend/platform/apperr"
	"collector_portal_backend/platform/logger"
)

// Service runs the market-price-estimation pipeline: attributes to search
// terms to completed sales to an estimate with a confidence grade.
type Service struct {
	client ebay.Searcher
	log    *logger.Logger
}

// New creates the market analysis service.
func New(client ebay.Searcher, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// EstimateMarketValue produces a price estimate for the described item.
func (s *Service) EstimateMarketValue(ctx context.Context, attrs ItemAttributes) (*transport.MarketEstimate, error) {
	if strings.TrimSpace(attrs.Name) == "" || strings.TrimSpace(attrs.Category) == "" {
		return nil, apperr.Validation("itemName and category are required").WithOp("market.EstimateMarketValue")
	}

	terms := GenerateSearchTerms(attrs)
	s.log.Debug("generated search terms", "count", len(terms), "terms", terms)

	sales := s.client.SearchCompleted(ctx, terms)

	estimate := Analyze(sales)
	estimate.SearchTermsUsed = terms

	s.log.Info("market estimate produced",
		"item", attrs.Name,
		"sales", len(sales),
		"confidence", estimate.Confidence,
	)

	return &estimate, nil
}

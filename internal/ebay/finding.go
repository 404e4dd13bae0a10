package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	findingBaseURL = "https://svcs.ebay.com/services/search/FindingService/v1"
	serviceVersion = "1.13.0"

	opFindActive    = "findItemsByKeywords"
	opFindCompleted = "findCompletedItems"

	// sellingState value marking a listing that ended in an actual sale,
	// as opposed to ending without one.
	stateEndedWithSales = "EndedWithSales"
)

// Doer abstracts the HTTP transport so tests can substitute a fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// findingClient is the live eBay Finding API client.
type findingClient struct {
	http    Doer
	appID   string
	baseURL string
}

func newFindingClient(appID string, doer Doer) *findingClient {
	if doer == nil {
		doer = &http.Client{Timeout: 10 * time.Second}
	}
	return &findingClient{
		http:    doer,
		appID:   appID,
		baseURL: findingBaseURL,
	}
}

func (c *findingClient) findActive(ctx context.Context, term string, maxPrice *float64) ([]Listing, error) {
	params := c.baseParams(opFindActive, term)
	params.Set("sortOrder", "EndTimeSoonest")
	if maxPrice != nil && *maxPrice > 0 {
		params.Set("itemFilter(0).name", "MaxPrice")
		params.Set("itemFilter(0).value", strconv.FormatFloat(*maxPrice, 'f', 2, 64))
		params.Set("itemFilter(0).paramName", "Currency")
		params.Set("itemFilter(0).paramValue", "USD")
	}

	env, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	resp, err := firstResponse(env.FindItemsByKeywordsResponse)
	if err != nil {
		return nil, err
	}

	return extractListings(resp, false), nil
}

func (c *findingClient) findCompleted(ctx context.Context, term string) ([]Listing, error) {
	params := c.baseParams(opFindCompleted, term)
	params.Set("itemFilter(0).name", "SoldItemsOnly")
	params.Set("itemFilter(0).value", "true")

	env, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	resp, err := firstResponse(env.FindCompletedItemsResponse)
	if err != nil {
		return nil, err
	}

	return extractListings(resp, true), nil
}

func (c *findingClient) baseParams(operation, term string) url.Values {
	params := url.Values{}
	params.Set("OPERATION-NAME", operation)
	params.Set("SERVICE-VERSION", serviceVersion)
	params.Set("SECURITY-APPNAME", c.appID)
	params.Set("RESPONSE-DATA-FORMAT", "JSON")
	params.Set("REST-PAYLOAD", "")
	params.Set("keywords", term)
	params.Set("paginationInput.entriesPerPage", "10")
	return params
}

func (c *findingClient) doRequest(ctx context.Context, params url.Values) (*findingEnvelope, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	var env findingEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &env, nil
}

// firstResponse unwraps the single-element response array and checks the ack.
func firstResponse(responses []findingResponse) (*findingResponse, error) {
	if len(responses) == 0 {
		return nil, fmt.Errorf("empty response envelope")
	}
	resp := responses[0]
	if ack := first(resp.Ack); ack != "Success" {
		return nil, fmt.Errorf("acknowledgement %q", ack)
	}
	return &resp, nil
}

// extractListings normalizes raw finding items. For completed searches only
// items that actually sold are kept; non-numeric or non-positive prices are
// excluded in both modes.
func extractListings(resp *findingResponse, completedOnly bool) []Listing {
	listings := []Listing{}
	for _, result := range resp.SearchResult {
		for _, item := range result.Item {
			status := firstSellingStatus(item.SellingStatus)
			if completedOnly && first(status.SellingState) != stateEndedWithSales {
				continue
			}

			price, err := strconv.ParseFloat(firstPrice(status.CurrentPrice).Value, 64)
			if err != nil || price <= 0 {
				continue
			}

			listings = append(listings, Listing{
				Title:     first(item.Title),
				Price:     price,
				URL:       first(item.ViewItemURL),
				ImageURL:  first(item.GalleryURL),
				EndedAt:   first(firstListingInfo(item.ListingInfo).EndTime),
				Condition: first(firstCondition(item.Condition).ConditionDisplayName),
			})
		}
	}
	return listings
}

// The Finding API wraps nearly every field in a single-element array; the
// envelope below mirrors that shape and the first* helpers unwrap it
// defensively.

type findingEnvelope struct {
	FindItemsByKeywordsResponse []findingResponse `json:"findItemsByKeywordsResponse"`
	FindCompletedItemsResponse  []findingResponse `json:"findCompletedItemsResponse"`
}

type findingResponse struct {
	Ack          []string       `json:"ack"`
	SearchResult []searchResult `json:"searchResult"`
}

type searchResult struct {
	Count string        `json:"@count"`
	Item  []findingItem `json:"item"`
}

type findingItem struct {
	Title         []string        `json:"title"`
	ViewItemURL   []string        `json:"viewItemURL"`
	GalleryURL    []string        `json:"galleryURL"`
	SellingStatus []sellingStatus `json:"sellingStatus"`
	ListingInfo   []listingInfo   `json:"listingInfo"`
	Condition     []itemCondition `json:"condition"`
}

type sellingStatus struct {
	CurrentPrice []currentPrice `json:"currentPrice"`
	SellingState []string       `json:"sellingState"`
}

type currentPrice struct {
	CurrencyID string `json:"@currencyId"`
	Value      string `json:"__value__"`
}

type listingInfo struct {
	EndTime []string `json:"endTime"`
}

type itemCondition struct {
	ConditionDisplayName []string `json:"conditionDisplayName"`
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func firstSellingStatus(values []sellingStatus) sellingStatus {
	if len(values) == 0 {
		return sellingStatus{}
	}
	return values[0]
}

func firstPrice(values []currentPrice) currentPrice {
	if len(values) == 0 {
		return currentPrice{}
	}
	return values[0]
}

func firstListingInfo(values []listingInfo) listingInfo {
	if len(values) == 0 {
		return listingInfo{}
	}
	return values[0]
}

func firstCondition(values []itemCondition) itemCondition {
	if len(values) == 0 {
		return itemCondition{}
	}
	return values[0]
}

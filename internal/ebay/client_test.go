package ebay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"collector_portal_backend/platform/logger"
)

type fakeDoer struct {
	requests  []*http.Request
	responses []*http.Response
	err       error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return jsonResponse(200, `{}`), nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

type recordingPacer struct {
	waits int
}

func (p *recordingPacer) Wait(context.Context) error {
	p.waits++
	return nil
}

func completedEnvelope(items ...string) string {
	return fmt.Sprintf(`{
		"findCompletedItemsResponse": [{
			"ack": ["Success"],
			"searchResult": [{"@count": "%d", "item": [%s]}]
		}]
	}`, len(items), strings.Join(items, ","))
}

func soldItem(title, price, state string) string {
	return fmt.Sprintf(`{
		"title": ["%s"],
		"viewItemURL": ["https://www.ebay.com/itm/%s"],
		"galleryURL": ["https://i.ebayimg.com/%s.jpg"],
		"sellingStatus": [{
			"currentPrice": [{"@currencyId": "USD", "__value__": "%s"}],
			"sellingState": ["%s"]
		}],
		"listingInfo": [{"endTime": ["2026-02-10T18:30:00.000Z"]}],
		"condition": [{"conditionDisplayName": ["Used"]}]
	}`, title, title, title, price, state)
}

func newTestClient(t *testing.T, doer *fakeDoer, pacer *recordingPacer) *Client {
	t.Helper()
	return NewClient("test-app-id", pacer, logger.New("development"),
		WithDoer(doer),
		WithClock(func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }),
	)
}

func TestSearchCompleted_ParsesSoldListingsOnly(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		jsonResponse(200, completedEnvelope(
			soldItem("hen-on-nest", "42.50", "EndedWithSales"),
			soldItem("unsold", "19.99", "EndedWithoutSales"),
		)),
	}}
	c := newTestClient(t, doer, &recordingPacer{})

	listings := c.SearchCompleted(context.Background(), []string{"hen on nest milk glass"})

	if len(listings) != 1 {
		t.Fatalf("expected 1 sold listing, got %d", len(listings))
	}
	got := listings[0]
	if got.Title != "hen-on-nest" || got.Price != 42.50 {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if got.URL != "https://www.ebay.com/itm/hen-on-nest" {
		t.Fatalf("unexpected url: %s", got.URL)
	}
	if got.EndedAt != "2026-02-10T18:30:00.000Z" {
		t.Fatalf("unexpected end time: %s", got.EndedAt)
	}
	if got.Condition != "Used" {
		t.Fatalf("unexpected condition: %s", got.Condition)
	}
}

func TestSearchCompleted_ExcludesBadPrices(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		jsonResponse(200, completedEnvelope(
			soldItem("free", "0.00", "EndedWithSales"),
			soldItem("junk", "not-a-number", "EndedWithSales"),
			soldItem("ok", "12.00", "EndedWithSales"),
		)),
	}}
	c := newTestClient(t, doer, &recordingPacer{})

	listings := c.SearchCompleted(context.Background(), []string{"jadite"})

	if len(listings) != 1 || listings[0].Title != "ok" {
		t.Fatalf("expected only the priced listing, got %+v", listings)
	}
}

func TestSearchCompleted_CapsTermsAtThree(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		jsonResponse(200, completedEnvelope(soldItem("a", "10.00", "EndedWithSales"))),
		jsonResponse(200, completedEnvelope(soldItem("b", "11.00", "EndedWithSales"))),
		jsonResponse(200, completedEnvelope(soldItem("c", "12.00", "EndedWithSales"))),
		jsonResponse(200, completedEnvelope(soldItem("d", "13.00", "EndedWithSales"))),
	}}
	pacer := &recordingPacer{}
	c := newTestClient(t, doer, pacer)

	terms := []string{"one", "two", "three", "four", "five"}
	listings := c.SearchCompleted(context.Background(), terms)

	if len(doer.requests) != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", len(doer.requests))
	}
	if pacer.waits != 3 {
		t.Fatalf("expected pacer consulted once per call, got %d", pacer.waits)
	}
	if len(listings) != 3 {
		t.Fatalf("expected 3 accumulated listings, got %d", len(listings))
	}
}

func TestSearchCompleted_CapsResultsAtTen(t *testing.T) {
	many := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		many = append(many, soldItem(fmt.Sprintf("item%d", i), "15.00", "EndedWithSales"))
	}
	doer := &fakeDoer{responses: []*http.Response{
		jsonResponse(200, completedEnvelope(many...)),
		jsonResponse(200, completedEnvelope(many...)),
	}}
	c := newTestClient(t, doer, &recordingPacer{})

	listings := c.SearchCompleted(context.Background(), []string{"one", "two"})

	if len(listings) != 10 {
		t.Fatalf("expected result cap of 10, got %d", len(listings))
	}
}

func TestSearchCompleted_FallsBackWholeBatchWhenNoLiveResults(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		jsonResponse(500, `{}`),
		jsonResponse(200, `{"findCompletedItemsResponse":[{"ack":["Failure"]}]}`),
		jsonResponse(200, `not json at all`),
	}}
	c := newTestClient(t, doer, &recordingPacer{})

	terms := []string{"one", "two", "three"}
	listings := c.SearchCompleted(context.Background(), terms)

	want := SyntheticSold("one", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if len(listings) != len(want) {
		t.Fatalf("expected synthetic batch of %d, got %d", len(want), len(listings))
	}
	for i := range want {
		if listings[i] != want[i] {
			t.Fatalf("listing %d: got %+v want %+v", i, listings[i], want[i])
		}
	}
}

func TestSearchActive_NoCredentialsUsesSynthetic(t *testing.T) {
	c := NewClient("", nil, logger.New("development"))

	listings := c.SearchActive(context.Background(), "vaseline glass", nil)

	if len(listings) < 2 || len(listings) > 3 {
		t.Fatalf("expected 2-3 synthetic listings, got %d", len(listings))
	}
}

func TestSearchActive_SendsMaxPriceFilter(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		jsonResponse(200, `{
			"findItemsByKeywordsResponse": [{
				"ack": ["Success"],
				"searchResult": [{"@count": "1", "item": [`+soldItem("active", "25.00", "Active")+`]}]
			}]
		}`),
	}}
	c := newTestClient(t, doer, &recordingPacer{})

	maxPrice := 50.0
	listings := c.SearchActive(context.Background(), "milk glass", &maxPrice)

	if len(doer.requests) != 1 {
		t.Fatalf("expected 1 upstream call, got %d", len(doer.requests))
	}
	q := doer.requests[0].URL.Query()
	if q.Get("OPERATION-NAME") != "findItemsByKeywords" {
		t.Fatalf("unexpected operation: %s", q.Get("OPERATION-NAME"))
	}
	if q.Get("itemFilter(0).name") != "MaxPrice" || q.Get("itemFilter(0).value") != "50.00" {
		t.Fatalf("missing MaxPrice filter: %v", q)
	}
	if len(listings) != 1 || listings[0].Price != 25.00 {
		t.Fatalf("unexpected listings: %+v", listings)
	}
}

func TestSearchActive_FallsBackOnTransportError(t *testing.T) {
	doer := &fakeDoer{err: fmt.Errorf("connection refused")}
	c := newTestClient(t, doer, &recordingPacer{})

	listings := c.SearchActive(context.Background(), "fenton hobnail", nil)

	if len(listings) < 2 || len(listings) > 3 {
		t.Fatalf("expected synthetic fallback, got %d listings", len(listings))
	}
	for _, l := range listings {
		if !strings.Contains(l.Title, "fenton hobnail") {
			t.Fatalf("synthetic title should mention the term: %q", l.Title)
		}
	}
}

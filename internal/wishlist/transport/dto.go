package transport

import "time"

// MonitorRequest is the POST /ebay-monitor body. A missing wishlistItemId
// selects batch mode over all active items.
type MonitorRequest struct {
	WishlistItemID *string `json:"wishlistItemId"`
}

// MonitorItemResult is the per-item breakdown in a monitoring report.
type MonitorItemResult struct {
	WishlistItemID string `json:"wishlistItemId"`
	ItemName       string `json:"itemName"`
	SearchTerm     string `json:"searchTerm"`
	NewListings    int    `json:"newListings"`
}

// MonitorReport summarizes a monitoring run.
type MonitorReport struct {
	Success          bool                `json:"success"`
	ItemsProcessed   int                 `json:"itemsProcessed"`
	TotalNewListings int                 `json:"totalNewListings"`
	Results          []MonitorItemResult `json:"results"`
	ProcessedAt      time.Time           `json:"processedAt"`
}

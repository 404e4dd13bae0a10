package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence capability the monitor service depends on.
// Satisfied by *Repository in production and by in-memory fakes in tests.
type Store interface {
	GetItem(ctx context.Context, id uuid.UUID) (*WishlistItem, error)
	ListActiveItems(ctx context.Context) ([]WishlistItem, error)
	HasFoundListing(ctx context.Context, itemID uuid.UUID, url string) (bool, error)
	InsertFoundListing(ctx context.Context, p CreateFoundListingParams) error
	TouchLastChecked(ctx context.Context, id uuid.UUID, at time.Time) error
}

var _ Store = (*Repository)(nil)

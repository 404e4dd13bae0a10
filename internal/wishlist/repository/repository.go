package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"collector_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	opGetItem         = "wishlist.repository.get_item"
	opListActive      = "wishlist.repository.list_active"
	opHasFound        = "wishlist.repository.has_found_listing"
	opInsertFound     = "wishlist.repository.insert_found_listing"
	opTouchLastCheck  = "wishlist.repository.touch_last_checked"
	pgUniqueViolation = "23505"
)

// WishlistItem is a tracked saved search owned by a user.
type WishlistItem struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	ItemName        string     `json:"itemName"`
	SearchTerm      string     `json:"searchTerm"`
	DesiredMaxPrice *float64   `json:"desiredMaxPrice,omitempty"`
	Status          string     `json:"status"`
	LastCheckedAt   *time.Time `json:"lastCheckedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// FoundListing is a marketplace match recorded for a wishlist item. Rows are
// append-only; at most one exists per (wishlist_item_id, url) pair.
type FoundListing struct {
	ID             uuid.UUID `json:"id"`
	WishlistItemID uuid.UUID `json:"wishlistItemId"`
	Platform       string    `json:"platform"`
	Title          string    `json:"title"`
	Price          float64   `json:"price"`
	URL            string    `json:"url"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	Condition      string    `json:"condition,omitempty"`
	ListingEndedAt string    `json:"listingEndedAt,omitempty"`
	FoundAt        time.Time `json:"foundAt"`
	Notified       bool      `json:"notified"`
}

// CreateFoundListingParams carries the fields for a new found listing row.
type CreateFoundListingParams struct {
	WishlistItemID uuid.UUID
	Platform       string
	Title          string
	Price          float64
	URL            string
	ImageURL       string
	Condition      string
	ListingEndedAt string
	FoundAt        time.Time
}

// Repository is the pgx-backed store for wishlist items and found listings.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetItem fetches a wishlist item by ID.
func (r *Repository) GetItem(ctx context.Context, id uuid.UUID) (*WishlistItem, error) {
	var item WishlistItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, item_name, search_term, desired_max_price, status,
		       last_checked_at, created_at, updated_at
		FROM wishlist_items
		WHERE id = $1
	`, id).Scan(
		&item.ID, &item.UserID, &item.ItemName, &item.SearchTerm,
		&item.DesiredMaxPrice, &item.Status, &item.LastCheckedAt,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("wishlist item not found").WithOp(opGetItem)
		}
		return nil, apperr.Internal(fmt.Sprintf("get wishlist item failed: %v", err)).WithOp(opGetItem)
	}

	return &item, nil
}

// ListActiveItems returns all items with status=active and a non-empty
// search term, the population a batch monitoring run operates on.
func (r *Repository) ListActiveItems(ctx context.Context) ([]WishlistItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, item_name, search_term, desired_max_price, status,
		       last_checked_at, created_at, updated_at
		FROM wishlist_items
		WHERE status = 'active' AND btrim(search_term) <> ''
		ORDER BY created_at
	`)
	if err != nil {
		return nil, apperr.Internal(fmt.Sprintf("list active wishlist items failed: %v", err)).WithOp(opListActive)
	}
	defer rows.Close()

	var items []WishlistItem
	for rows.Next() {
		var item WishlistItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ItemName, &item.SearchTerm,
			&item.DesiredMaxPrice, &item.Status, &item.LastCheckedAt,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, apperr.Internal(fmt.Sprintf("scan wishlist item failed: %v", err)).WithOp(opListActive)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Sprintf("iterate wishlist items failed: %v", err)).WithOp(opListActive)
	}

	return items, nil
}

// HasFoundListing reports whether a listing URL was already recorded for an item.
func (r *Repository) HasFoundListing(ctx context.Context, itemID uuid.UUID, url string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM found_listings
			WHERE wishlist_item_id = $1 AND url = $2
		)
	`, itemID, url).Scan(&exists)
	if err != nil {
		return false, apperr.Internal(fmt.Sprintf("found listing lookup failed: %v", err)).WithOp(opHasFound)
	}

	return exists, nil
}

// InsertFoundListing records a new match. A concurrent run may have inserted
// the same (item, url) pair between lookup and insert; the unique index turns
// that race into a Conflict the caller can skip.
func (r *Repository) InsertFoundListing(ctx context.Context, p CreateFoundListingParams) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO found_listings
		(wishlist_item_id, platform, title, price, url, image_url, condition, listing_ended_at, found_at, notified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false)
		ON CONFLICT (wishlist_item_id, url) DO NOTHING
	`, p.WishlistItemID, p.Platform, p.Title, p.Price, p.URL, p.ImageURL, p.Condition, p.ListingEndedAt, p.FoundAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.Conflict("listing already recorded").WithOp(opInsertFound)
		}
		return apperr.Internal(fmt.Sprintf("insert found listing failed: %v", err)).WithOp(opInsertFound)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("listing already recorded").WithOp(opInsertFound)
	}

	return nil
}

// TouchLastChecked stamps a wishlist item as checked at the given time.
func (r *Repository) TouchLastChecked(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE wishlist_items
		SET last_checked_at = $2, updated_at = $2
		WHERE id = $1
	`, id, at)
	if err != nil {
		return apperr.Internal(fmt.Sprintf("touch last checked failed: %v", err)).WithOp(opTouchLastCheck)
	}

	return nil
}

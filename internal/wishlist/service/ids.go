package service

import (
	"collector_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

// parseItemID maps an unparseable ID to NotFound: from the caller's point of
// view a malformed identifier and an unknown one are the same thing.
func parseItemID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.NotFound("wishlist item not found")
	}
	return id, nil
}

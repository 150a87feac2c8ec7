package entity

import (
	"time"

	"github.com/google/uuid"
)

// Item is the ownership and lock surface of a catalog item. Catalog metadata
// (title, condition, photos) lives with the catalog collaborator; the swap core
// only reads and mutates ownership and lock fields.
type Item struct {
	ID           uuid.UUID  // The Global Unique Identifier (GUID) for the item.
	OwnerID      uuid.UUID  // The current owner.
	Title        string     // Display title, carried along for notifications.
	LockedUntil  *time.Time // Lock expiry; the item cannot join another swap before it.
	LockedBySwap *uuid.UUID // The swap that holds the current lock, if any.
	CreatedAt    time.Time  // Timestamp of when this record was created.
	UpdatedAt    time.Time  // Timestamp of the last modification.
}

// IsLocked reports whether the item holds an unexpired lock at the given instant.
func (i *Item) IsLocked(now time.Time) bool {
	return i.LockedUntil != nil && i.LockedUntil.After(now)
}

package repository

import (
	"context"
	"time"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for item persistence.
var (
	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemLockConflict is returned when a conditional lock mutation loses to a concurrent one.
	ErrItemLockConflict = errors.New("item lock was taken by another swap")
)

// ItemRepository is the swap core's view of the item/ownership store. It only
// covers ownership and lock fields; catalog metadata belongs to the catalog
// collaborator.
type ItemRepository interface {
	// FindItemByID retrieves an item by its unique ID.
	FindItemByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// LockItem sets the item's lock to (swapID, until). The update is
	// conditional: it fails with ErrItemLockConflict when the item already
	// holds an unexpired lock for a different swap.
	LockItem(ctx context.Context, itemID, swapID uuid.UUID, until time.Time) error

	// UnlockItem clears the item's lock if it is held by the given swap.
	// Unlocking an item the swap does not hold is a no-op.
	UnlockItem(ctx context.Context, itemID, swapID uuid.UUID) error

	// TransferOwnership sets the item's owner. The update is conditional on
	// the expected current owner to avoid clobbering concurrent transfers.
	TransferOwnership(ctx context.Context, itemID, fromUserID, toUserID uuid.UUID) error
}

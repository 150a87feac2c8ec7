// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for swap persistence.
var (
	// ErrSwapNotFound is returned when a swap is not found.
	ErrSwapNotFound = errors.New("swap not found")
)

// SwapRepository defines the interface for swap-related database operations.
type SwapRepository interface {
	// CreateSwap persists a new swap.
	CreateSwap(ctx context.Context, swap *entity.Swap) error

	// FindSwapByID retrieves a swap by its unique ID.
	FindSwapByID(ctx context.Context, id uuid.UUID) (*entity.Swap, error)

	// FindSwapByIDForUpdate retrieves a swap and takes a row-level write lock
	// on it for the duration of the surrounding transaction. This is the
	// serialization point for concurrent Confirm and Cancel calls; outside a
	// transaction it behaves like FindSwapByID.
	FindSwapByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Swap, error)

	// FindSwapsByParty retrieves all swaps a user participates in, newest first.
	FindSwapsByParty(ctx context.Context, userID uuid.UUID) ([]*entity.Swap, error)

	// UpdateSwap updates an existing swap record.
	UpdateSwap(ctx context.Context, swap *entity.Swap) error
}

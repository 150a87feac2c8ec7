package repository

import (
	"context"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/errors"

	"github.com/google/uuid"
)

// ErrConfirmationNotFound is returned when no confirmation marker exists.
var ErrConfirmationNotFound = errors.New("confirmation not found")

// ConfirmationRepository persists the per-party confirmation markers of the
// two-phase completion gate. Markers are durable so the gate survives process
// boundaries; expired markers are treated as absent and may be overwritten.
type ConfirmationRepository interface {
	// UpsertConfirmation records or refreshes the marker for (swap, user).
	UpsertConfirmation(ctx context.Context, confirmation *entity.SwapConfirmation) error

	// FindConfirmation retrieves the marker for (swap, user), expired or not.
	FindConfirmation(ctx context.Context, swapID, userID uuid.UUID) (*entity.SwapConfirmation, error)

	// FindConfirmationsBySwap retrieves all markers of a swap.
	FindConfirmationsBySwap(ctx context.Context, swapID uuid.UUID) ([]*entity.SwapConfirmation, error)

	// DeleteConfirmationsBySwap removes all markers of a swap once it reached
	// a terminal state.
	DeleteConfirmationsBySwap(ctx context.Context, swapID uuid.UUID) error
}

package repository

import (
	"context"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for exchange persistence.
var (
	// ErrExchangeNotFound is returned when an exchange record is not found.
	ErrExchangeNotFound = errors.New("exchange not found")
	// ErrExchangeExists is returned when a swap already has an exchange record.
	ErrExchangeExists = errors.New("exchange already recorded for this swap")
)

// ExchangeRepository defines the interface for handover-record persistence.
// A swap owns at most one exchange record; the unique constraint on swap_id
// backs the exactly-once completion guarantee.
type ExchangeRepository interface {
	// CreateExchange persists the handover record for a swap.
	// Returns ErrExchangeExists when one was already created.
	CreateExchange(ctx context.Context, exchange *entity.Exchange) error

	// FindExchangeBySwap retrieves the handover record of a swap.
	FindExchangeBySwap(ctx context.Context, swapID uuid.UUID) (*entity.Exchange, error)
}

package repository

import (
	"context"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/errors"

	"github.com/google/uuid"
)

// ErrExtensionNotFound is returned when an extension request is not found.
var ErrExtensionNotFound = errors.New("extension request not found")

// ExtensionRepository defines the interface for borrow-extension persistence.
type ExtensionRepository interface {
	// CreateExtension persists a new extension request.
	CreateExtension(ctx context.Context, request *entity.ExtensionRequest) error

	// FindExtensionByID retrieves an extension request by its unique ID.
	FindExtensionByID(ctx context.Context, id uuid.UUID) (*entity.ExtensionRequest, error)

	// FindPendingExtensionBySwap retrieves the pending request of a swap.
	// Returns ErrExtensionNotFound when no pending request exists.
	FindPendingExtensionBySwap(ctx context.Context, swapID uuid.UUID) (*entity.ExtensionRequest, error)

	// UpdateExtension updates an existing extension request record.
	UpdateExtension(ctx context.Context, request *entity.ExtensionRequest) error
}

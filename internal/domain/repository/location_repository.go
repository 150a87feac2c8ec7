package repository

import (
	"context"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/errors"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Domain-specific errors for location persistence.
var (
	// ErrLocationNotFound is returned when a location is not found.
	ErrLocationNotFound = errors.New("location not found")
	// ErrLocationExists is returned when a (name, city) pair is already taken.
	ErrLocationExists = errors.New("location already exists in this city")
)

// LocationRepository defines the interface for the curated meetup-location store.
// The store is read-mostly; writes are append-only user submissions.
type LocationRepository interface {
	// CreateLocation persists a new curated location.
	// Returns ErrLocationExists when (name, city) is already taken.
	CreateLocation(ctx context.Context, location *entity.Location) error

	// FindLocationByID retrieves a location by its unique ID.
	FindLocationByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)

	// FindActiveLocationsWithinBound retrieves all active locations inside the
	// given bounding box.
	FindActiveLocationsWithinBound(ctx context.Context, bound orb.Bound) ([]*entity.Location, error)

	// IncrementUsageCount bumps the completed-swap counter for a location.
	IncrementUsageCount(ctx context.Context, id uuid.UUID) error
}

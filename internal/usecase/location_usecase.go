package usecase

import (
	"context"

	"swapmeet/internal/domain/entity"

	"github.com/google/uuid"
)

// AddLocationInput represents the input for submitting a new curated location.
type AddLocationInput struct {
	Name         string                  `json:"name"`
	Category     entity.LocationCategory `json:"category"`
	Latitude     float64                 `json:"latitude"`
	Longitude    float64                 `json:"longitude"`
	City         string                  `json:"city"`
	Amenities    []string                `json:"amenities,omitempty"`
	OpeningHours string                  `json:"opening_hours,omitempty"`
}

// LocationUsecase manages the curated meetup-location store.
type LocationUsecase interface {
	// AddLocation appends a user-submitted public location. Submissions start
	// unverified and active.
	AddLocation(ctx context.Context, input *AddLocationInput) (*entity.Location, error)

	// GetLocation retrieves a location by ID.
	GetLocation(ctx context.Context, id uuid.UUID) (*entity.Location, error)

	// ListNearby retrieves active locations within radiusKm of the coordinate.
	ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]*entity.Location, error)
}

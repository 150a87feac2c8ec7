package service

import (
	"context"

	"swapmeet/internal/domain/entity"
)

// DiscoveredPlace is a nearby public place returned by the discovery collaborator.
type DiscoveredPlace struct {
	Name      string
	Category  entity.LocationCategory
	Latitude  float64
	Longitude float64
	Rating    float64
	Address   string
}

// PlaceDiscovery is the optional external place-discovery collaborator.
// Absence or failure degrades to curated-only candidates.
type PlaceDiscovery interface {
	// NearbyPlaces returns public places of the given category within radiusKm
	// of the coordinate.
	NearbyPlaces(ctx context.Context, lat, lng, radiusKm float64, category entity.LocationCategory) ([]DiscoveredPlace, error)
}

package service

import (
	"context"
)

// TransportMode selects the routing profile for meetup planning.
type TransportMode string

const (
	TransportWalking TransportMode = "walking"
	TransportCycling TransportMode = "cycling"
	TransportDriving TransportMode = "driving"
	TransportTransit TransportMode = "transit"
)

// RouteLeg is one segment of a planned route.
type RouteLeg struct {
	StartLat   float64
	StartLng   float64
	EndLat     float64
	EndLng     float64
	DistanceKm float64
}

// Route is an ordered sequence of legs between two coordinates.
type Route struct {
	Legs            []RouteLeg
	TotalDistanceKm float64
}

// RoutePlanner is the optional routing collaborator. Implementations must
// respect the context deadline; callers degrade to a geometric fallback on any
// error, so failures are never surfaced to users.
type RoutePlanner interface {
	// PlanRoute returns a route between the two coordinates for the given mode.
	PlanRoute(ctx context.Context, fromLat, fromLng, toLat, toLng float64, mode TransportMode) (*Route, error)
}

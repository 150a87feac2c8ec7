package usecase

import (
	"context"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/domain/service"
)

// MeetupPreferences are the optional knobs for meetup discovery.
type MeetupPreferences struct {
	TransportMode  service.TransportMode     `json:"transport_mode,omitempty"`
	PreferredTypes []entity.LocationCategory `json:"preferred_types,omitempty"`
	MaxDistanceKm  float64                   `json:"max_distance_km,omitempty"`
}

// SuggestMeetupInput represents the input for meetup discovery.
type SuggestMeetupInput struct {
	Party1Lat   float64            `json:"party1_lat"`
	Party1Lng   float64            `json:"party1_lng"`
	Party2Lat   float64            `json:"party2_lat"`
	Party2Lng   float64            `json:"party2_lng"`
	Preferences *MeetupPreferences `json:"preferences,omitempty"`
}

// MeetupCandidate is one scored suggestion.
type MeetupCandidate struct {
	Location          *entity.Location `json:"location"`
	Score             float64          `json:"score"`
	DistanceFromMidKm float64          `json:"distance_from_midpoint_km"`
	DistanceToParty1  float64          `json:"distance_to_party1_km"`
	DistanceToParty2  float64          `json:"distance_to_party2_km"`
}

// MeetupSuggestion is the ranked discovery result.
type MeetupSuggestion struct {
	MidpointLat         float64            `json:"midpoint_lat"`
	MidpointLng         float64            `json:"midpoint_lng"`
	RouteBased          bool               `json:"route_based"` // false when the geometric fallback was used
	Candidates          []*MeetupCandidate `json:"candidates"`
	Party1ToMidpointKm  float64            `json:"party1_to_midpoint_km"`
	Party2ToMidpointKm  float64            `json:"party2_to_midpoint_km"`
	TotalTravelBurdenKm float64            `json:"total_travel_burden_km"`
}

// MeetupUsecase turns two party coordinates into a fair, ranked list of public
// meetup locations.
type MeetupUsecase interface {
	// SuggestMeetup computes the midpoint and ranks nearby candidates.
	SuggestMeetup(ctx context.Context, input *SuggestMeetupInput) (*MeetupSuggestion, error)
}

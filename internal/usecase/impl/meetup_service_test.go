package impl

import (
	"context"
	"errors"
	"testing"

	"swapmeet/config"
	"swapmeet/internal/domain/entity"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/domain/service"
	"swapmeet/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoutePlanner struct {
	route *service.Route
	err   error
}

func (s *stubRoutePlanner) PlanRoute(_ context.Context, _, _, _, _ float64, _ service.TransportMode) (*service.Route, error) {
	return s.route, s.err
}

type stubPlaceDiscovery struct {
	places map[entity.LocationCategory][]service.DiscoveredPlace
	err    error
}

func (s *stubPlaceDiscovery) NearbyPlaces(_ context.Context, _, _, _ float64, category entity.LocationCategory) ([]service.DiscoveredPlace, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.places[category], nil
}

func newMeetupFixture(planner service.RoutePlanner, discovery service.PlaceDiscovery) (*memStore, usecase.MeetupUsecase) {
	store := newMemStore()
	svc := NewMeetupService(&memLocationRepo{store}, planner, discovery, newDiscardLogger(), &config.Config{})

	return store, svc
}

func TestMeetupService_GeometricMidpoint(t *testing.T) {
	store, svc := newMeetupFixture(nil, nil)
	store.addLocation("Central Library", 40.05, -74.0)

	suggestion, err := svc.SuggestMeetup(context.Background(), &usecase.SuggestMeetupInput{
		Party1Lat: 40.0, Party1Lng: -74.0,
		Party2Lat: 40.1, Party2Lng: -74.0,
	})
	require.NoError(t, err)

	assert.False(t, suggestion.RouteBased)
	assert.InDelta(t, 40.05, suggestion.MidpointLat, 1e-9)
	assert.InDelta(t, -74.0, suggestion.MidpointLng, 1e-9)
	assert.InDelta(t, suggestion.Party1ToMidpointKm+suggestion.Party2ToMidpointKm,
		suggestion.TotalTravelBurdenKm, 1e-9)
	require.Len(t, suggestion.Candidates, 1)
}

func TestMeetupService_InvalidCoordinates(t *testing.T) {
	_, svc := newMeetupFixture(nil, nil)

	_, err := svc.SuggestMeetup(context.Background(), &usecase.SuggestMeetupInput{
		Party1Lat: 95.0, Party1Lng: 0.0,
		Party2Lat: 0.0, Party2Lng: 0.0,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestMeetupService_RouteBasedMidpoint(t *testing.T) {
	planner := &stubRoutePlanner{route: &service.Route{
		TotalDistanceKm: 4,
		Legs: []service.RouteLeg{
			{StartLat: 40.0, StartLng: -74.0, EndLat: 40.02, EndLng: -74.0, DistanceKm: 3},
			{StartLat: 40.02, StartLng: -74.0, EndLat: 40.03, EndLng: -74.0, DistanceKm: 1},
		},
	}}
	store, svc := newMeetupFixture(planner, nil)
	store.addLocation("Central Library", 40.01, -74.0)

	suggestion, err := svc.SuggestMeetup(context.Background(), &usecase.SuggestMeetupInput{
		Party1Lat: 40.0, Party1Lng: -74.0,
		Party2Lat: 40.03, Party2Lng: -74.0,
	})
	require.NoError(t, err)

	assert.True(t, suggestion.RouteBased)
	// Half of 4 km elapses two thirds into the first leg.
	assert.InDelta(t, 40.0+(0.02*2.0/3.0), suggestion.MidpointLat, 1e-9)
}

func TestMeetupService_RoutePlannerFailureFallsBack(t *testing.T) {
	planner := &stubRoutePlanner{err: errors.New("planner down")}
	store, svc := newMeetupFixture(planner, nil)
	store.addLocation("Central Library", 40.05, -74.0)

	suggestion, err := svc.SuggestMeetup(context.Background(), &usecase.SuggestMeetupInput{
		Party1Lat: 40.0, Party1Lng: -74.0,
		Party2Lat: 40.1, Party2Lng: -74.0,
	})
	require.NoError(t, err)

	assert.False(t, suggestion.RouteBased)
	assert.InDelta(t, 40.05, suggestion.MidpointLat, 1e-9)
}

func TestMeetupService_ScoringPrefersLibraryOverPark(t *testing.T) {
	store, svc := newMeetupFixture(nil, nil)

	// Same coordinates, same everything except category.
	library := store.addLocation("Quiet Library", 40.05, -74.0)
	park := store.addLocation("Green Park", 40.05, -74.001)
	store.locations[park.ID].Category = entity.CategoryPark

	suggestion, err := svc.SuggestMeetup(context.Background(), &usecase.SuggestMeetupInput{
		Party1Lat: 40.0, Party1Lng: -74.0,
		Party2Lat: 40.1, Party2Lng: -74.0,
	})
	require.NoError(t, err)

	require.Len(t, suggestion.Candidates, 2)
	assert.Equal(t, library.ID, suggestion.Candidates[0].Location.ID)
	assert.Greater(t, suggestion.Candidates[0].Score, suggestion.Candidates[1].Score)
}

func TestMeetupService_PreferredTypeBoost(t *testing.T) {
	store, svc := newMeetupFixture(nil, nil)

	store.addLocation("Quiet Library", 40.05, -74.0)
	cafe := store.addLocation("Corner Cafe", 40.05, -74.001)
	store.locations[cafe.ID].Category = entity.CategoryCafe

	suggestion, err := svc.SuggestMeetup(context.Background(), &usecase.SuggestMeetupInput{
		Party1Lat: 40.0, Party1Lng: -74.0,
		Party2Lat: 40.1, Party2Lng: -74.0,
		Preferences: &usecase.MeetupPreferences{
			PreferredTypes: []entity.LocationCategory{entity.CategoryCafe},
		},
	})
	require.NoError(t, err)

	// The +20 preferred boost outweighs the 1 point of category priority.
	require.NotEmpty(t, suggestion.Candidates)
	assert.Equal(t, cafe.ID, suggestion.Candidates[0].Location.ID)
}

func TestMeetupService_Determinism(t *testing.T) {
	store, svc := newMeetupFixture(nil, nil)

	for i := range 5 {
		loc := store.addLocation("Branch Library", 40.05, -74.0+float64(i)*0.001)
		loc.Name = "Branch Library " + string(rune('A'+i))
		store.locations[loc.ID] = loc
	}

	input := &usecase.SuggestMeetupInput{
		Party1Lat: 40.0, Party1Lng: -74.0,
		Party2Lat: 40.1, Party2Lng: -74.0,
	}

	first, err := svc.SuggestMeetup(context.Background(), input)
	require.NoError(t, err)

	for range 3 {
		next, err := svc.SuggestMeetup(context.Background(), input)
		require.NoError(t, err)
		require.Len(t, next.Candidates, len(first.Candidates))
		for i := range first.Candidates {
			assert.Equal(t, first.Candidates[i].Location.ID, next.Candidates[i].Location.ID)
		}
	}
}

func TestMeetupService_CandidateCap(t *testing.T) {
	store, svc := newMeetupFixture(nil, nil)

	for i := range 15 {
		loc := store.addLocation("Spot", 40.05, -74.0+float64(i)*0.0005)
		loc.Name = "Spot " + string(rune('A'+i))
		store.locations[loc.ID] = loc
	}

	suggestion, err := svc.SuggestMeetup(context.Background(), &usecase.SuggestMeetupInput{
		Party1Lat: 40.0, Party1Lng: -74.0,
		Party2Lat: 40.1, Party2Lng: -74.0,
	})
	require.NoError(t, err)

	assert.Len(t, suggestion.Candidates, 10)
}

func TestMeetupService_DiscoveryMergesAndDedups(t *testing.T) {
	discovery := &stubPlaceDiscovery{places: map[entity.LocationCategory][]service.DiscoveredPlace{
		entity.CategoryCafe: {
			// Within 50 m of the curated entry with a containing name: merged away.
			{Name: "Corner Cafe Downtown", Category: entity.CategoryCafe, Latitude: 40.0501, Longitude: -74.0},
			// Far enough to survive as its own candidate.
			{Name: "Other Cafe", Category: entity.CategoryCafe, Latitude: 40.06, Longitude: -74.0, Rating: 4.0},
		},
	}}
	store, svc := newMeetupFixture(nil, discovery)

	curated := store.addLocation("Corner Cafe", 40.05, -74.0)
	store.locations[curated.ID].Category = entity.CategoryCafe

	suggestion, err := svc.SuggestMeetup(context.Background(), &usecase.SuggestMeetupInput{
		Party1Lat: 40.0, Party1Lng: -74.0,
		Party2Lat: 40.1, Party2Lng: -74.0,
		Preferences: &usecase.MeetupPreferences{
			PreferredTypes: []entity.LocationCategory{entity.CategoryCafe},
		},
	})
	require.NoError(t, err)

	require.Len(t, suggestion.Candidates, 2)
	names := []string{suggestion.Candidates[0].Location.Name, suggestion.Candidates[1].Location.Name}
	assert.Contains(t, names, "Corner Cafe")
	assert.Contains(t, names, "Other Cafe")
}

func TestMeetupService_DiscoveryFailureIsBestEffort(t *testing.T) {
	discovery := &stubPlaceDiscovery{err: errors.New("overpass down")}
	store, svc := newMeetupFixture(nil, discovery)
	store.addLocation("Central Library", 40.05, -74.0)

	suggestion, err := svc.SuggestMeetup(context.Background(), &usecase.SuggestMeetupInput{
		Party1Lat: 40.0, Party1Lng: -74.0,
		Party2Lat: 40.1, Party2Lng: -74.0,
		Preferences: &usecase.MeetupPreferences{
			PreferredTypes: []entity.LocationCategory{entity.CategoryCafe},
		},
	})
	require.NoError(t, err)

	assert.Len(t, suggestion.Candidates, 1)
}

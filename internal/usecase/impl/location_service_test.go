package impl

import (
	"context"
	"errors"
	"testing"

	"swapmeet/internal/domain/entity"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocationFixture() (*memStore, usecase.LocationUsecase) {
	store := newMemStore()

	return store, NewLocationService(&memLocationRepo{store}, newDiscardLogger())
}

func TestLocationService_AddLocation(t *testing.T) {
	_, svc := newLocationFixture()

	location, err := svc.AddLocation(context.Background(), &usecase.AddLocationInput{
		Name:      "Central Library",
		Category:  entity.CategoryLibrary,
		Latitude:  40.0,
		Longitude: -74.0,
		City:      "Testville",
		Amenities: []string{"wifi", "seating"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SourceCurated, location.Source)
	assert.True(t, location.IsActive)
	assert.False(t, location.Verified)
}

func TestLocationService_AddLocation_Validation(t *testing.T) {
	_, svc := newLocationFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input *usecase.AddLocationInput
	}{
		{"missing name", &usecase.AddLocationInput{
			City: "Testville", Category: entity.CategoryCafe, Latitude: 40, Longitude: -74,
		}},
		{"missing city", &usecase.AddLocationInput{
			Name: "Somewhere", Category: entity.CategoryCafe, Latitude: 40, Longitude: -74,
		}},
		{"bad coordinates", &usecase.AddLocationInput{
			Name: "Somewhere", City: "Testville", Category: entity.CategoryCafe, Latitude: 91, Longitude: -74,
		}},
		{"unknown category", &usecase.AddLocationInput{
			Name: "Somewhere", City: "Testville", Category: "spaceport", Latitude: 40, Longitude: -74,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddLocation(ctx, tc.input)
			assert.True(t, errors.Is(err, domainerrors.ErrValidation))
		})
	}
}

func TestLocationService_AddLocation_Duplicate(t *testing.T) {
	_, svc := newLocationFixture()
	ctx := context.Background()

	input := &usecase.AddLocationInput{
		Name:      "Central Library",
		Category:  entity.CategoryLibrary,
		Latitude:  40.0,
		Longitude: -74.0,
		City:      "Testville",
	}

	_, err := svc.AddLocation(ctx, input)
	require.NoError(t, err)

	_, err = svc.AddLocation(ctx, input)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestLocationService_GetLocation(t *testing.T) {
	store, svc := newLocationFixture()
	ctx := context.Background()

	location := store.addLocation("Central Library", 40.0, -74.0)

	got, err := svc.GetLocation(ctx, location.ID)
	require.NoError(t, err)
	assert.Equal(t, location.Name, got.Name)

	_, err = svc.GetLocation(ctx, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestLocationService_ListNearby(t *testing.T) {
	store, svc := newLocationFixture()
	ctx := context.Background()

	near := store.addLocation("Near Library", 40.01, -74.0)  // ~1.1 km
	store.addLocation("Far Library", 40.2, -74.0)            // ~22 km
	inactive := store.addLocation("Closed Library", 40.0, -74.0)
	inactive.IsActive = false

	results, err := svc.ListNearby(ctx, 40.0, -74.0, 5)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, near.ID, results[0].ID)
}

func TestLocationService_ListNearby_Validation(t *testing.T) {
	_, svc := newLocationFixture()
	ctx := context.Background()

	_, err := svc.ListNearby(ctx, 95, 0, 5)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))

	_, err = svc.ListNearby(ctx, 40, -74, 0)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"swapmeet/internal/domain/entity"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/domain/repository"
	"swapmeet/internal/errors"
	"swapmeet/internal/infra/geo"
	"swapmeet/internal/usecase"

	"github.com/google/uuid"
)

type locationService struct {
	locationRepo repository.LocationRepository
	logger       *slog.Logger

	now func() time.Time
}

// NewLocationService creates the curated meetup-location store service.
func NewLocationService(locationRepo repository.LocationRepository, logger *slog.Logger) usecase.LocationUsecase {
	return &locationService{
		locationRepo: locationRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// AddLocation appends a user-submitted public location. Submissions start
// active but unverified; moderation flips Verified later.
func (s *locationService) AddLocation(ctx context.Context, input *usecase.AddLocationInput) (*entity.Location, error) {
	name := strings.TrimSpace(input.Name)
	city := strings.TrimSpace(input.City)
	if name == "" || city == "" {
		return nil, domainerrors.ErrValidation.WithDetails("name and city are required")
	}
	if !geo.IsValidCoordinate(input.Latitude, input.Longitude) {
		return nil, domainerrors.ErrValidation.WithDetails("coordinates out of range")
	}
	if !validCategory(input.Category) {
		return nil, domainerrors.ErrValidation.WithDetails("unknown location category")
	}

	now := s.now()
	location := &entity.Location{
		ID:           uuid.New(),
		Name:         name,
		Category:     input.Category,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		City:         city,
		Amenities:    input.Amenities,
		OpeningHours: input.OpeningHours,
		Verified:     false,
		Source:       entity.SourceCurated,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.locationRepo.CreateLocation(ctx, location); err != nil {
		if errors.Is(err, repository.ErrLocationExists) {
			return nil, domainerrors.ErrValidation.WithDetails("location already exists in this city")
		}

		return nil, errors.Wrap(err, "failed to create location")
	}

	return location, nil
}

// GetLocation retrieves a location by ID.
func (s *locationService) GetLocation(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	location, err := s.locationRepo.FindLocationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find location")
	}

	return location, nil
}

// ListNearby retrieves active locations within radiusKm of the coordinate.
// The bounding-box query overshoots at the corners, so results are filtered
// by true great-circle distance afterwards.
func (s *locationService) ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]*entity.Location, error) {
	if !geo.IsValidCoordinate(lat, lng) {
		return nil, domainerrors.ErrValidation.WithDetails("coordinates out of range")
	}
	if radiusKm <= 0 {
		return nil, domainerrors.ErrValidation.WithDetails("radius must be positive")
	}

	bound := geo.BoundAround(lat, lng, radiusKm)
	candidates, err := s.locationRepo.FindActiveLocationsWithinBound(ctx, bound)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query locations")
	}

	results := make([]*entity.Location, 0, len(candidates))
	for _, candidate := range candidates {
		if geo.Distance(lat, lng, candidate.Latitude, candidate.Longitude) <= radiusKm {
			results = append(results, candidate)
		}
	}

	return results, nil
}

func validCategory(category entity.LocationCategory) bool {
	switch category {
	case entity.CategoryLibrary, entity.CategoryCafe, entity.CategoryBookstore,
		entity.CategoryCommunityCenter, entity.CategoryHotel, entity.CategoryRestaurant,
		entity.CategoryMall, entity.CategorySchool, entity.CategoryTrainStation,
		entity.CategoryPark, entity.CategoryOther:
		return true
	default:
		return false
	}
}

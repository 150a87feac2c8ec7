package postgres

import (
	"context"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/domain/repository"
	"swapmeet/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// locationRepository implements the domain.LocationRepository interface.
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

// CreateLocation persists a new curated location.
func (repo *locationRepository) CreateLocation(ctx context.Context, location *entity.Location) error {
	locationM := fromLocationDomain(location)

	if err := repo.db.WithContext(ctx).Create(locationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrLocationExists
		}

		return errors.Wrap(err, "failed to create location")
	}

	location.ID = locationM.ID
	location.CreatedAt = locationM.CreatedAt
	location.UpdatedAt = locationM.UpdatedAt

	return nil
}

// FindLocationByID retrieves a location by its unique ID.
func (repo *locationRepository) FindLocationByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	var locationM model.LocationModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&locationM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLocationNotFound
		}

		return nil, errors.Wrap(err, "failed to find location by ID")
	}

	return toLocationDomain(&locationM), nil
}

// FindActiveLocationsWithinBound retrieves all active locations inside the
// bounding box. The box maps to plain BETWEEN range conditions, which ride on
// the latitude/longitude indexes.
func (repo *locationRepository) FindActiveLocationsWithinBound(ctx context.Context, bound orb.Bound) ([]*entity.Location, error) {
	var locationModels []*model.LocationModel
	err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("latitude BETWEEN ? AND ?", bound.Min.Lat(), bound.Max.Lat()).
		Where("longitude BETWEEN ? AND ?", bound.Min.Lon(), bound.Max.Lon()).
		Find(&locationModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find locations within bound")
	}

	locations := make([]*entity.Location, 0, len(locationModels))
	for _, locationM := range locationModels {
		locations = append(locations, toLocationDomain(locationM))
	}

	return locations, nil
}

// IncrementUsageCount bumps the completed-swap counter for a location.
func (repo *locationRepository) IncrementUsageCount(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LocationModel{}).
		Where("id = ?", id).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment location usage count")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLocationNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toLocationDomain converts a GORM LocationModel to a domain Location entity.
func toLocationDomain(data *model.LocationModel) *entity.Location {
	if data == nil {
		return nil
	}

	return &entity.Location{
		ID:           data.ID,
		Name:         data.Name,
		Category:     entity.LocationCategory(data.Category),
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		City:         data.City,
		Rating:       data.Rating,
		SafetyScore:  data.SafetyScore,
		UsageCount:   data.UsageCount,
		Amenities:    data.Amenities,
		OpeningHours: data.OpeningHours,
		Verified:     data.Verified,
		Source:       entity.LocationSource(data.Source),
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromLocationDomain converts a domain Location entity to a GORM LocationModel.
func fromLocationDomain(data *entity.Location) *model.LocationModel {
	if data == nil {
		return nil
	}

	return &model.LocationModel{
		ID:           data.ID,
		Name:         data.Name,
		Category:     string(data.Category),
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		City:         data.City,
		Rating:       data.Rating,
		SafetyScore:  data.SafetyScore,
		UsageCount:   data.UsageCount,
		Amenities:    data.Amenities,
		OpeningHours: data.OpeningHours,
		Verified:     data.Verified,
		Source:       string(data.Source),
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

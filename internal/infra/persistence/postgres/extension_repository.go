package postgres

import (
	"context"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/domain/repository"
	"swapmeet/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// extensionRepository implements the domain.ExtensionRepository interface.
type extensionRepository struct {
	db *gorm.DB
}

// NewExtensionRepository is the constructor for extensionRepository.
func NewExtensionRepository(db *gorm.DB) repository.ExtensionRepository {
	return &extensionRepository{db: db}
}

// CreateExtension persists a new extension request.
func (repo *extensionRepository) CreateExtension(ctx context.Context, request *entity.ExtensionRequest) error {
	requestM := fromExtensionDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		return errors.Wrap(err, "failed to create extension request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt

	return nil
}

// FindExtensionByID retrieves an extension request by its unique ID.
func (repo *extensionRepository) FindExtensionByID(ctx context.Context, id uuid.UUID) (*entity.ExtensionRequest, error) {
	var requestM model.ExtensionRequestModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrExtensionNotFound
		}

		return nil, errors.Wrap(err, "failed to find extension request by ID")
	}

	return toExtensionDomain(&requestM), nil
}

// FindPendingExtensionBySwap retrieves the pending request of a swap.
func (repo *extensionRepository) FindPendingExtensionBySwap(ctx context.Context, swapID uuid.UUID) (*entity.ExtensionRequest, error) {
	var requestM model.ExtensionRequestModel
	err := repo.db.WithContext(ctx).
		Where("swap_id = ? AND status = ?", swapID, string(entity.ExtensionPending)).
		First(&requestM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrExtensionNotFound
		}

		return nil, errors.Wrap(err, "failed to find pending extension by swap")
	}

	return toExtensionDomain(&requestM), nil
}

// UpdateExtension updates an existing extension request record.
func (repo *extensionRepository) UpdateExtension(ctx context.Context, request *entity.ExtensionRequest) error {
	requestM := fromExtensionDomain(request)

	result := repo.db.WithContext(ctx).
		Model(&model.ExtensionRequestModel{}).
		Where("id = ?", request.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(requestM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update extension request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrExtensionNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toExtensionDomain converts a GORM model to a domain ExtensionRequest entity.
func toExtensionDomain(data *model.ExtensionRequestModel) *entity.ExtensionRequest {
	if data == nil {
		return nil
	}

	return &entity.ExtensionRequest{
		ID:            data.ID,
		SwapID:        data.SwapID,
		RequesterID:   data.RequesterID,
		DaysRequested: data.DaysRequested,
		Reason:        data.Reason,
		Status:        entity.ExtensionStatus(data.Status),
		ResponseNote:  data.ResponseNote,
		CreatedAt:     data.CreatedAt,
		RespondedAt:   data.RespondedAt,
	}
}

// fromExtensionDomain converts a domain ExtensionRequest entity to a GORM model.
func fromExtensionDomain(data *entity.ExtensionRequest) *model.ExtensionRequestModel {
	if data == nil {
		return nil
	}

	return &model.ExtensionRequestModel{
		ID:            data.ID,
		SwapID:        data.SwapID,
		RequesterID:   data.RequesterID,
		DaysRequested: data.DaysRequested,
		Reason:        data.Reason,
		Status:        string(data.Status),
		ResponseNote:  data.ResponseNote,
		CreatedAt:     data.CreatedAt,
		RespondedAt:   data.RespondedAt,
	}
}

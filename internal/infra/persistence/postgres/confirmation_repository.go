package postgres

import (
	"context"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/domain/repository"
	"swapmeet/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// confirmationRepository implements the domain.ConfirmationRepository interface.
type confirmationRepository struct {
	db *gorm.DB
}

// NewConfirmationRepository is the constructor for confirmationRepository.
func NewConfirmationRepository(db *gorm.DB) repository.ConfirmationRepository {
	return &confirmationRepository{db: db}
}

// UpsertConfirmation records or refreshes the marker for (swap, user).
func (repo *confirmationRepository) UpsertConfirmation(ctx context.Context, confirmation *entity.SwapConfirmation) error {
	confirmationM := fromConfirmationDomain(confirmation)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "swap_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"confirmed_at", "expires_at"}),
		}).
		Create(confirmationM).Error
	if err != nil {
		return errors.Wrap(err, "failed to upsert confirmation")
	}

	return nil
}

// FindConfirmation retrieves the marker for (swap, user), expired or not.
func (repo *confirmationRepository) FindConfirmation(ctx context.Context, swapID, userID uuid.UUID) (*entity.SwapConfirmation, error) {
	var confirmationM model.SwapConfirmationModel
	err := repo.db.WithContext(ctx).
		Where("swap_id = ? AND user_id = ?", swapID, userID).
		First(&confirmationM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConfirmationNotFound
		}

		return nil, errors.Wrap(err, "failed to find confirmation")
	}

	return toConfirmationDomain(&confirmationM), nil
}

// FindConfirmationsBySwap retrieves all markers of a swap.
func (repo *confirmationRepository) FindConfirmationsBySwap(ctx context.Context, swapID uuid.UUID) ([]*entity.SwapConfirmation, error) {
	var confirmationModels []*model.SwapConfirmationModel
	err := repo.db.WithContext(ctx).
		Where("swap_id = ?", swapID).
		Find(&confirmationModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find confirmations by swap")
	}

	confirmations := make([]*entity.SwapConfirmation, 0, len(confirmationModels))
	for _, confirmationM := range confirmationModels {
		confirmations = append(confirmations, toConfirmationDomain(confirmationM))
	}

	return confirmations, nil
}

// DeleteConfirmationsBySwap removes all markers of a swap.
func (repo *confirmationRepository) DeleteConfirmationsBySwap(ctx context.Context, swapID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("swap_id = ?", swapID).
		Delete(&model.SwapConfirmationModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete confirmations by swap")
	}

	return nil
}

// --- Mapper Functions ---

// toConfirmationDomain converts a GORM model to a domain SwapConfirmation entity.
func toConfirmationDomain(data *model.SwapConfirmationModel) *entity.SwapConfirmation {
	if data == nil {
		return nil
	}

	return &entity.SwapConfirmation{
		SwapID:      data.SwapID,
		UserID:      data.UserID,
		ConfirmedAt: data.ConfirmedAt,
		ExpiresAt:   data.ExpiresAt,
	}
}

// fromConfirmationDomain converts a domain SwapConfirmation entity to a GORM model.
func fromConfirmationDomain(data *entity.SwapConfirmation) *model.SwapConfirmationModel {
	if data == nil {
		return nil
	}

	return &model.SwapConfirmationModel{
		SwapID:      data.SwapID,
		UserID:      data.UserID,
		ConfirmedAt: data.ConfirmedAt,
		ExpiresAt:   data.ExpiresAt,
	}
}

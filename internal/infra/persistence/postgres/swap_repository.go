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

// swapRepository implements the domain.SwapRepository interface.
type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository is the constructor for swapRepository.
func NewSwapRepository(db *gorm.DB) repository.SwapRepository {
	return &swapRepository{db: db}
}

// CreateSwap persists a new swap.
func (repo *swapRepository) CreateSwap(ctx context.Context, swap *entity.Swap) error {
	swapM := fromSwapDomain(swap)

	if err := repo.db.WithContext(ctx).Create(swapM).Error; err != nil {
		return errors.Wrap(err, "failed to create swap")
	}

	swap.ID = swapM.ID
	swap.CreatedAt = swapM.CreatedAt
	swap.UpdatedAt = swapM.UpdatedAt

	return nil
}

// FindSwapByID retrieves a swap by its unique ID.
func (repo *swapRepository) FindSwapByID(ctx context.Context, id uuid.UUID) (*entity.Swap, error) {
	var swapM model.SwapModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&swapM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSwapNotFound
		}

		return nil, errors.Wrap(err, "failed to find swap by ID")
	}

	return toSwapDomain(&swapM), nil
}

// FindSwapByIDForUpdate retrieves a swap under SELECT FOR UPDATE. Within a
// transaction this row lock serializes concurrent Confirm and Cancel calls on
// the same swap.
func (repo *swapRepository) FindSwapByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Swap, error) {
	var swapM model.SwapModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&swapM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSwapNotFound
		}

		return nil, errors.Wrap(err, "failed to find swap by ID for update")
	}

	return toSwapDomain(&swapM), nil
}

// FindSwapsByParty retrieves all swaps a user participates in, newest first.
func (repo *swapRepository) FindSwapsByParty(ctx context.Context, userID uuid.UUID) ([]*entity.Swap, error) {
	var swapModels []*model.SwapModel
	err := repo.db.WithContext(ctx).
		Where("initiator_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&swapModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find swaps by party")
	}

	swaps := make([]*entity.Swap, 0, len(swapModels))
	for _, swapM := range swapModels {
		swaps = append(swaps, toSwapDomain(swapM))
	}

	return swaps, nil
}

// UpdateSwap updates an existing swap record.
func (repo *swapRepository) UpdateSwap(ctx context.Context, swap *entity.Swap) error {
	swapM := fromSwapDomain(swap)

	result := repo.db.WithContext(ctx).
		Model(&model.SwapModel{}).
		Where("id = ?", swap.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(swapM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update swap")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSwapNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toSwapDomain converts a GORM SwapModel to a domain Swap entity.
func toSwapDomain(data *model.SwapModel) *entity.Swap {
	if data == nil {
		return nil
	}

	return &entity.Swap{
		ID:             data.ID,
		InitiatorID:    data.InitiatorID,
		ReceiverID:     data.ReceiverID,
		InitiatorItem:  data.InitiatorItem,
		ReceiverItem:   data.ReceiverItem,
		Status:         entity.SwapStatus(data.Status),
		MeetupLocation: data.MeetupLocation,
		MeetupTime:     data.MeetupTime,
		LockExpiresAt:  data.LockExpiresAt,
		IsBorrowing:    data.IsBorrowing,
		BorrowDays:     data.BorrowDays,
		ReturnDeadline: data.ReturnDeadline,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromSwapDomain converts a domain Swap entity to a GORM SwapModel.
func fromSwapDomain(data *entity.Swap) *model.SwapModel {
	if data == nil {
		return nil
	}

	return &model.SwapModel{
		ID:             data.ID,
		InitiatorID:    data.InitiatorID,
		ReceiverID:     data.ReceiverID,
		InitiatorItem:  data.InitiatorItem,
		ReceiverItem:   data.ReceiverItem,
		Status:         string(data.Status),
		MeetupLocation: data.MeetupLocation,
		MeetupTime:     data.MeetupTime,
		LockExpiresAt:  data.LockExpiresAt,
		IsBorrowing:    data.IsBorrowing,
		BorrowDays:     data.BorrowDays,
		ReturnDeadline: data.ReturnDeadline,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

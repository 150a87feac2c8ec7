package postgres

import (
	"context"
	"time"

	"swapmeet/internal/domain/entity"
	"swapmeet/internal/domain/repository"
	"swapmeet/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// itemRepository implements the domain.ItemRepository interface.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

// FindItemByID retrieves an item by its unique ID.
func (repo *itemRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var itemM model.ItemModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by ID")
	}

	return toItemDomain(&itemM), nil
}

// LockItem sets the item's lock to (swapID, until). The WHERE clause makes the
// update conditional: it only matches when the item holds no unexpired lock or
// already holds this swap's lock, so a concurrent locker cannot be overwritten.
func (repo *itemRepository) LockItem(ctx context.Context, itemID, swapID uuid.UUID, until time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", itemID).
		Where("locked_until IS NULL OR locked_until <= ? OR locked_by_swap = ?", time.Now(), swapID).
		Updates(map[string]any{
			"locked_until":   until,
			"locked_by_swap": swapID,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to lock item")
	}
	if result.RowsAffected == 0 {
		// Either the item does not exist or another swap holds the lock.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.ItemModel{}).
			Where("id = ?", itemID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check item existence")
		}
		if count == 0 {
			return repository.ErrItemNotFound
		}

		return repository.ErrItemLockConflict
	}

	return nil
}

// UnlockItem clears the item's lock if it is held by the given swap.
func (repo *itemRepository) UnlockItem(ctx context.Context, itemID, swapID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ? AND locked_by_swap = ?", itemID, swapID).
		Updates(map[string]any{
			"locked_until":   nil,
			"locked_by_swap": nil,
		}).Error
	if err != nil {
		return errors.Wrap(err, "failed to unlock item")
	}

	return nil
}

// TransferOwnership sets the item's owner, conditional on the expected current
// owner so concurrent transfers cannot clobber each other.
func (repo *itemRepository) TransferOwnership(ctx context.Context, itemID, fromUserID, toUserID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ? AND owner_id = ?", itemID, fromUserID).
		Update("owner_id", toUserID)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to transfer item ownership")
	}
	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toItemDomain converts a GORM ItemModel to a domain Item entity.
func toItemDomain(data *model.ItemModel) *entity.Item {
	if data == nil {
		return nil
	}

	return &entity.Item{
		ID:           data.ID,
		OwnerID:      data.OwnerID,
		Title:        data.Title,
		LockedUntil:  data.LockedUntil,
		LockedBySwap: data.LockedBySwap,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

package postgres

import (
	"context"

	"swapmeet/internal/domain/repository"
	"swapmeet/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// trustRepository implements the domain.TrustRepository interface. The table
// is written by the social collaborator; only the existence check lives here.
type trustRepository struct {
	db *gorm.DB
}

// NewTrustRepository is the constructor for trustRepository.
func NewTrustRepository(db *gorm.DB) repository.TrustRepository {
	return &trustRepository{db: db}
}

// TrustExists reports whether a mutual trust relationship exists between the
// two users. Rows are stored once per pair in either order.
func (repo *trustRepository) TrustExists(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.TrustModel{}).
		Where("(user_a = ? AND user_b = ?) OR (user_a = ? AND user_b = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check trust relationship")
	}

	return count > 0, nil
}

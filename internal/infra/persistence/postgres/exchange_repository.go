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

// exchangeRepository implements the domain.ExchangeRepository interface.
type exchangeRepository struct {
	db *gorm.DB
}

// NewExchangeRepository is the constructor for exchangeRepository.
func NewExchangeRepository(db *gorm.DB) repository.ExchangeRepository {
	return &exchangeRepository{db: db}
}

// CreateExchange persists the handover record for a swap. The unique index on
// swap_id turns a duplicate completion attempt into ErrExchangeExists.
func (repo *exchangeRepository) CreateExchange(ctx context.Context, exchange *entity.Exchange) error {
	exchangeM := fromExchangeDomain(exchange)

	if err := repo.db.WithContext(ctx).Create(exchangeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrExchangeExists
		}

		return errors.Wrap(err, "failed to create exchange")
	}

	exchange.ID = exchangeM.ID
	exchange.CreatedAt = exchangeM.CreatedAt

	return nil
}

// FindExchangeBySwap retrieves the handover record of a swap.
func (repo *exchangeRepository) FindExchangeBySwap(ctx context.Context, swapID uuid.UUID) (*entity.Exchange, error) {
	var exchangeM model.ExchangeModel
	err := repo.db.WithContext(ctx).
		Where("swap_id = ?", swapID).
		First(&exchangeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrExchangeNotFound
		}

		return nil, errors.Wrap(err, "failed to find exchange by swap")
	}

	return toExchangeDomain(&exchangeM), nil
}

// --- Mapper Functions ---

// toExchangeDomain converts a GORM ExchangeModel to a domain Exchange entity.
func toExchangeDomain(data *model.ExchangeModel) *entity.Exchange {
	if data == nil {
		return nil
	}

	return &entity.Exchange{
		ID:                 data.ID,
		SwapID:             data.SwapID,
		LocationID:         data.LocationID,
		ExchangedAt:        data.ExchangedAt,
		InitiatorConfirmed: data.InitiatorConfirmed,
		ReceiverConfirmed:  data.ReceiverConfirmed,
		ProofOfScan:        data.ProofOfScan,
		Notes:              data.Notes,
		CreatedAt:          data.CreatedAt,
	}
}

// fromExchangeDomain converts a domain Exchange entity to a GORM ExchangeModel.
func fromExchangeDomain(data *entity.Exchange) *model.ExchangeModel {
	if data == nil {
		return nil
	}

	return &model.ExchangeModel{
		ID:                 data.ID,
		SwapID:             data.SwapID,
		LocationID:         data.LocationID,
		ExchangedAt:        data.ExchangedAt,
		InitiatorConfirmed: data.InitiatorConfirmed,
		ReceiverConfirmed:  data.ReceiverConfirmed,
		ProofOfScan:        data.ProofOfScan,
		Notes:              data.Notes,
		CreatedAt:          data.CreatedAt,
	}
}

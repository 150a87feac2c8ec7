package model

import (
	"time"

	"github.com/google/uuid"
)

// ExchangeModel is the GORM-specific struct for the 'exchanges' table.
// The unique index on SwapID backs the exactly-once completion guarantee.
type ExchangeModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SwapID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_exchanges_on_swap"`
	LocationID         *uuid.UUID `gorm:"type:uuid"`
	ExchangedAt        time.Time  `gorm:"not null"`
	InitiatorConfirmed bool       `gorm:"not null;default:false"`
	ReceiverConfirmed  bool       `gorm:"not null;default:false"`
	ProofOfScan        bool       `gorm:"not null;default:false"`
	Notes              string     `gorm:"type:text"`
	CreatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (ExchangeModel) TableName() string {
	return "exchanges"
}

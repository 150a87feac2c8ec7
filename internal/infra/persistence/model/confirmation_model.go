package model

import (
	"time"

	"github.com/google/uuid"
)

// SwapConfirmationModel is the GORM-specific struct for the 'swap_confirmations'
// table. One row per (swap, user); the composite primary key makes the upsert
// target explicit.
type SwapConfirmationModel struct {
	SwapID      uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;primary_key"`
	ConfirmedAt time.Time `gorm:"not null"`
	ExpiresAt   time.Time `gorm:"not null;index:idx_swap_confirmations_on_expiry"`
}

// TableName explicitly sets the table name for GORM.
func (SwapConfirmationModel) TableName() string {
	return "swap_confirmations"
}

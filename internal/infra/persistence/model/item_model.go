package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemModel is the GORM-specific struct for the 'items' table. Only the
// ownership and lock columns are touched here; catalog metadata is managed by
// the catalog collaborator against the same table.
type ItemModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index:idx_items_on_owner"`
	Title        string    `gorm:"type:varchar(255);not null"`
	LockedUntil  *time.Time
	LockedBySwap *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}

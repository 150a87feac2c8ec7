package model

import (
	"time"

	"github.com/google/uuid"
)

// ExtensionRequestModel is the GORM-specific struct for the 'extension_requests' table.
type ExtensionRequestModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SwapID        uuid.UUID `gorm:"type:uuid;not null;index:idx_extension_requests_on_swap"`
	RequesterID   uuid.UUID `gorm:"type:uuid;not null"`
	DaysRequested int       `gorm:"not null"`
	Reason        string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	ResponseNote  string    `gorm:"type:text"`
	CreatedAt     time.Time
	RespondedAt   *time.Time
}

// TableName explicitly sets the table name for GORM.
func (ExtensionRequestModel) TableName() string {
	return "extension_requests"
}

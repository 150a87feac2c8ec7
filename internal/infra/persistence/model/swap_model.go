// Package model contains the GORM-specific structs mapped to database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// SwapModel is the GORM-specific struct for the 'swaps' table.
type SwapModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	InitiatorID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_swaps_on_initiator"`
	ReceiverID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_swaps_on_receiver"`
	InitiatorItem  uuid.UUID  `gorm:"type:uuid;not null"`
	ReceiverItem   *uuid.UUID `gorm:"type:uuid"`
	Status         string     `gorm:"type:varchar(20);not null;index:idx_swaps_on_status"`
	MeetupLocation *uuid.UUID `gorm:"type:uuid"`
	MeetupTime     *time.Time
	LockExpiresAt  *time.Time
	IsBorrowing    bool `gorm:"not null;default:false"`
	BorrowDays     int  `gorm:"not null;default:0"`
	ReturnDeadline *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (SwapModel) TableName() string {
	return "swaps"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// TrustModel is the GORM-specific struct for the 'trust_relationships' table.
// Rows are written by the social collaborator; the swap core only reads them.
type TrustModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserA     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_trust_pair"`
	UserB     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_trust_pair"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TrustModel) TableName() string {
	return "trust_relationships"
}

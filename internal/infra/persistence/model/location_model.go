package model

import (
	"time"

	"github.com/google/uuid"
)

// LocationModel is the GORM-specific struct for the 'locations' table.
// Curated locations are unique on (name, city).
type LocationModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_locations_name_city"`
	Category     string    `gorm:"type:varchar(50);not null"`
	Latitude     float64   `gorm:"type:decimal(10,8);not null;index:idx_locations_on_lat"`
	Longitude    float64   `gorm:"type:decimal(11,8);not null;index:idx_locations_on_lng"`
	City         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_locations_name_city"`
	Rating       float64   `gorm:"type:decimal(3,2);not null;default:0"`
	SafetyScore  float64   `gorm:"type:decimal(3,2);not null;default:0"`
	UsageCount   int       `gorm:"not null;default:0"`
	Amenities    []string  `gorm:"serializer:json;type:jsonb"`
	OpeningHours string    `gorm:"type:text"`
	Verified     bool      `gorm:"not null;default:false"`
	Source       string    `gorm:"type:varchar(20);not null;default:'curated'"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (LocationModel) TableName() string {
	return "locations"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// LocationCategory classifies a public meetup point.
type LocationCategory string

const (
	CategoryLibrary         LocationCategory = "library"
	CategoryCafe            LocationCategory = "cafe"
	CategoryBookstore       LocationCategory = "bookstore"
	CategoryCommunityCenter LocationCategory = "community_center"
	CategoryHotel           LocationCategory = "hotel"
	CategoryRestaurant      LocationCategory = "restaurant"
	CategoryMall            LocationCategory = "mall"
	CategorySchool          LocationCategory = "school"
	CategoryTrainStation    LocationCategory = "train_station"
	CategoryPark            LocationCategory = "park"
	CategoryOther           LocationCategory = "other"
)

// LocationSource distinguishes curated entries from externally discovered ones.
type LocationSource string

const (
	// SourceCurated marks locations from the local curated store.
	SourceCurated LocationSource = "curated"
	// SourceDiscovered marks locations fetched from an external place-discovery provider.
	SourceDiscovered LocationSource = "discovered"
)

// Location is a candidate or chosen public meetup point.
// Curated locations are unique on (name, city).
type Location struct {
	ID           uuid.UUID        // The Global Unique Identifier (GUID) for the location.
	Name         string           // Display name of the place.
	Category     LocationCategory // The place category (library, cafe, ...).
	Latitude     float64          // The geographic latitude, [-90, 90].
	Longitude    float64          // The geographic longitude, [-180, 180].
	City         string           // The city the location belongs to.
	Rating       float64          // Community rating, 0-5.
	SafetyScore  float64          // Safety score, 0-5.
	UsageCount   int              // Number of completed swaps held here.
	Amenities    []string         // Amenity labels (wifi, seating, parking, ...).
	OpeningHours string           // Free-form opening hours description.
	Verified     bool             // True once a moderator verified the entry.
	Source       LocationSource   // Curated vs. externally discovered.
	IsActive     bool             // Inactive locations are excluded from suggestions.
	CreatedAt    time.Time        // Timestamp of when this record was created.
	UpdatedAt    time.Time        // Timestamp of the last modification.
}

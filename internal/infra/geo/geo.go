// Package geo provides the canonical distance and midpoint primitives shared
// by the verification subsystem and the meetup discovery engine.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// EarthRadiusKm is the spherical-Earth approximation radius.
const EarthRadiusKm = 6371.0

// Distance calculates the great circle distance between two points in kilometers
// using the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lng1Rad := lng1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lng2Rad := lng2 * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLng := lng2Rad - lng1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceMeters is Distance expressed in meters.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return Distance(lat1, lng1, lat2, lng2) * 1000
}

// Midpoint returns the geometric midpoint of two coordinates, the simple
// average of the latitude/longitude pairs. It is the default and the fallback
// when route-based planning is unavailable.
func Midpoint(lat1, lng1, lat2, lng2 float64) (lat, lng float64) {
	return (lat1 + lat2) / 2, (lng1 + lng2) / 2
}

// IsValidCoordinate checks whether a coordinate is within valid degree ranges.
func IsValidCoordinate(lat, lng float64) bool {
	// Reject NaN or infinities early
	if math.IsNaN(lat) || math.IsNaN(lng) ||
		math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}

	return lat >= -90 && lat <= 90 &&
		lng >= -180 && lng <= 180
}

// BoundAround returns a geographic bounding box centered on the coordinate and
// expanded by radiusKm in every direction.
func BoundAround(lat, lng, radiusKm float64) orb.Bound {
	return orbgeo.NewBoundAroundPoint(orb.Point{lng, lat}, radiusKm*1000)
}

// PointInBound reports whether the coordinate lies inside the bounding box.
func PointInBound(lat, lng float64, bound orb.Bound) bool {
	return bound.Contains(orb.Point{lng, lat})
}

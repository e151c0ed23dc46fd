package geo

import (
	"math"

	"github.com/healthpal-app/backend/internal/domain/entities"
)

const earthRadiusKm = 6371.0

// Haversine computes the great-circle distance in kilometers between two
// coordinates. Pure and deterministic; defined for any pair of valid points,
// including identical and antipodal ones.
func Haversine(from, to entities.Coordinate) float64 {
	lat1 := toRadians(from.Latitude)
	lat2 := toRadians(to.Latitude)
	deltaLat := toRadians(to.Latitude - from.Latitude)
	deltaLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// RoundKm1 rounds a distance to one decimal place
func RoundKm1(km float64) float64 {
	return math.Round(km*10) / 10
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

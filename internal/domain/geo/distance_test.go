package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/healthpal-app/backend/internal/domain/entities"
)

func TestHaversine_SamePoint(t *testing.T) {
	points := []entities.Coordinate{
		{},
		{Latitude: 48.8566, Longitude: 2.3522},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 90, Longitude: 0},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Haversine(p, p))
	}
}

func TestHaversine_PoleToPole(t *testing.T) {
	north := entities.Coordinate{Latitude: 90, Longitude: 0}
	south := entities.Coordinate{Latitude: -90, Longitude: 0}

	assert.InDelta(t, 20015.1, Haversine(north, south), 0.5)
}

func TestHaversine_OneDegreeLongitudeAtEquator(t *testing.T) {
	a := entities.Coordinate{Latitude: 0, Longitude: 0}
	b := entities.Coordinate{Latitude: 0, Longitude: 1}

	assert.InDelta(t, 111.2, Haversine(a, b), 0.5)
}

func TestHaversine_Symmetric(t *testing.T) {
	a := entities.Coordinate{Latitude: 48.8566, Longitude: 2.3522}
	b := entities.Coordinate{Latitude: 51.5074, Longitude: -0.1278}

	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
	assert.InDelta(t, 343.6, Haversine(a, b), 2.0)
}

func TestRoundKm1(t *testing.T) {
	assert.Equal(t, 12.3, RoundKm1(12.34))
	assert.Equal(t, 12.4, RoundKm1(12.35))
	assert.Equal(t, 0.0, RoundKm1(0.04))
}

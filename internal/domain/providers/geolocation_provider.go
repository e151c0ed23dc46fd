package providers

import (
	"context"

	"github.com/healthpal-app/backend/internal/domain/entities"
)

// GeocodedLocation is the best match for a free-text address
type GeocodedLocation struct {
	Coordinate  entities.Coordinate
	DisplayName string
}

// GeocodingProvider defines the interface for geocoding services
type GeocodingProvider interface {
	// Geocode converts a free-text address to its best-matching coordinate
	// and human-readable label
	Geocode(ctx context.Context, address string) (*GeocodedLocation, error)
}

package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthpal-app/backend/internal/domain/entities"
	"github.com/healthpal-app/backend/internal/domain/providers"
	apperrors "github.com/healthpal-app/backend/pkg/errors"
)

// MockGeocodingProvider implements a mock geocoding provider for local
// development, so the service runs without hitting the public Nominatim API.
type MockGeocodingProvider struct{}

// NewMockGeocodingProvider creates a new mock geocoding provider
func NewMockGeocodingProvider() providers.GeocodingProvider {
	return &MockGeocodingProvider{}
}

// Geocode resolves a handful of well-known city names
func (m *MockGeocodingProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedLocation, error) {
	mockLocations := map[string]entities.Coordinate{
		"Paris":    {Latitude: 48.8566, Longitude: 2.3522},
		"London":   {Latitude: 51.5074, Longitude: -0.1278},
		"New York": {Latitude: 40.7128, Longitude: -74.0060},
		"Lagos":    {Latitude: 6.5244, Longitude: 3.3792},
		"Abuja":    {Latitude: 9.0765, Longitude: 7.3986},
		"Nairobi":  {Latitude: -1.2921, Longitude: 36.8219},
	}

	for city, coord := range mockLocations {
		if strings.Contains(strings.ToLower(address), strings.ToLower(city)) {
			return &providers.GeocodedLocation{
				Coordinate:  coord,
				DisplayName: fmt.Sprintf("%s (mock)", city),
			}, nil
		}
	}

	return nil, apperrors.NewNotFoundError("no results for address")
}

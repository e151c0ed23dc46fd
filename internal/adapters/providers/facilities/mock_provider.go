package facilities

import (
	"context"

	"github.com/healthpal-app/backend/internal/domain/entities"
	"github.com/healthpal-app/backend/internal/domain/providers"
)

// MockFacilityProvider implements a mock facility data source for local
// development and demos.
type MockFacilityProvider struct{}

// NewMockFacilityProvider creates a new mock facility provider
func NewMockFacilityProvider() providers.FacilityDataProvider {
	return &MockFacilityProvider{}
}

// FindNearby returns two synthetic facilities close to the search center
func (m *MockFacilityProvider) FindNearby(ctx context.Context, center entities.Coordinate, radiusKm float64) ([]entities.FacilityCandidate, error) {
	return []entities.FacilityCandidate{
		{
			Name:         "Mock General Hospital",
			Address:      "123 Healthcare Blvd",
			FacilityType: "hospital",
			Specialties:  []string{"hospital"},
			Coordinate:   &entities.Coordinate{Latitude: center.Latitude + 0.01, Longitude: center.Longitude + 0.01},
		},
		{
			Name:         "Mock Community Clinic",
			Address:      "456 Medical Ave",
			FacilityType: "clinic",
			Coordinate:   &entities.Coordinate{Latitude: center.Latitude - 0.01, Longitude: center.Longitude - 0.01},
		},
	}, nil
}

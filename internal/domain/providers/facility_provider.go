package providers

import (
	"context"

	"github.com/healthpal-app/backend/internal/domain/entities"
)

// FacilityDataProvider defines the interface for the external spatial data
// source that serves healthcare facility records. A single call covers one
// radius tier; the expansion policy lives in the application service.
type FacilityDataProvider interface {
	// FindNearby returns healthcare facilities within radiusKm of center.
	// An empty slice with a nil error is a valid "nothing there" response.
	FindNearby(ctx context.Context, center entities.Coordinate, radiusKm float64) ([]entities.FacilityCandidate, error)
}

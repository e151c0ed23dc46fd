package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/healthpal-app/backend/internal/domain/entities"
	"github.com/healthpal-app/backend/internal/domain/providers"
	"github.com/healthpal-app/backend/internal/infrastructure/observability"
	apperrors "github.com/healthpal-app/backend/pkg/errors"
)

const (
	// Radius expansion policy. Rural users may have no facility within the
	// first tier, so the search widens until something is found or the cap
	// is reached. Tiers are sequential: each depends on the previous one
	// coming back empty.
	initialRadiusKm = 50.0
	maxRadiusKm     = 300.0
	radiusStepKm    = 50.0
)

// FacilityLocatorService resolves a location query to a ranked list of nearby
// healthcare facilities. All state is request-scoped; the service itself only
// holds its injected providers.
type FacilityLocatorService struct {
	geocoder   providers.GeocodingProvider
	facilities providers.FacilityDataProvider
	metrics    *observability.Metrics
}

// NewFacilityLocatorService creates a new facility locator service
func NewFacilityLocatorService(
	geocoder providers.GeocodingProvider,
	facilities providers.FacilityDataProvider,
) *FacilityLocatorService {
	return &FacilityLocatorService{
		geocoder:   geocoder,
		facilities: facilities,
	}
}

// SetMetrics wires optional upstream metrics
func (s *FacilityLocatorService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Locate resolves query to a search result: geocode when only an address was
// given, validate the center, search with an expanding radius, then rank.
// An empty result is a success, distinct from an upstream failure.
func (s *FacilityLocatorService) Locate(ctx context.Context, query entities.LocationQuery) (*entities.FacilitySearchResult, error) {
	if err := query.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	ctx, span := observability.StartSpan(ctx, "FacilityLocatorService.Locate")
	defer span.End()

	var center entities.Coordinate
	var label string

	if query.Coordinate != nil {
		center = *query.Coordinate
		label = fmt.Sprintf("%.4f, %.4f", center.Latitude, center.Longitude)
	} else {
		location, err := s.geocoder.Geocode(ctx, query.Address)
		if err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
		center = location.Coordinate
		label = location.DisplayName
	}

	// Geocoded coordinates are validated the same way as direct input.
	if err := center.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	observability.SetSpanAttributes(span,
		attribute.Float64("search.center.latitude", center.Latitude),
		attribute.Float64("search.center.longitude", center.Longitude),
	)

	candidates, err := s.expandingSearch(ctx, center)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	result := &entities.FacilitySearchResult{
		Facilities:    rankCandidates(center, candidates, label),
		LocationLabel: label,
	}
	if len(result.Facilities) == 0 {
		result.Message = fmt.Sprintf(
			"No healthcare facilities were found within %.0f km of this location.", maxRadiusKm)
	}

	return result, nil
}

// expandingSearch queries the facility data source tier by tier until a tier
// returns candidates or the radius cap is passed. A failed tier is logged and
// skipped; only a search where every tier failed is an error, so callers can
// tell "nothing nearby" from "the source never answered".
func (s *FacilityLocatorService) expandingSearch(ctx context.Context, center entities.Coordinate) ([]entities.FacilityCandidate, error) {
	logger := observability.LoggerFromContext(ctx)

	var lastErr error
	anySuccess := false

	for radius := initialRadiusKm; radius <= maxRadiusKm; radius += radiusStepKm {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.NewExternalError("facility search cancelled", err)
		}

		candidates, err := s.facilities.FindNearby(ctx, center, radius)
		if s.metrics != nil {
			observability.RecordRadiusTier(ctx, s.metrics, radius, err == nil)
		}
		if err != nil {
			lastErr = err
			logger.Warn().
				Err(err).
				Float64("radius_km", radius).
				Msg("facility tier query failed, widening radius")
			continue
		}

		anySuccess = true
		if len(candidates) > 0 {
			logger.Debug().
				Float64("radius_km", radius).
				Int("candidates", len(candidates)).
				Msg("facility search satisfied")
			return candidates, nil
		}
	}

	if !anySuccess {
		return nil, apperrors.NewExternalError("facility data source unavailable", lastErr)
	}
	return nil, nil
}

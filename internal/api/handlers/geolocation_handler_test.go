package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthpal-app/backend/internal/api/handlers"
	"github.com/healthpal-app/backend/internal/domain/entities"
	"github.com/healthpal-app/backend/internal/domain/providers"
	apperrors "github.com/healthpal-app/backend/pkg/errors"
)

type stubGeocodingProvider struct {
	location *providers.GeocodedLocation
	err      error
}

func (s *stubGeocodingProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedLocation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.location, nil
}

func TestGeocode_Success(t *testing.T) {
	provider := &stubGeocodingProvider{location: &providers.GeocodedLocation{
		Coordinate:  entities.Coordinate{Latitude: 48.8566, Longitude: 2.3522},
		DisplayName: "Paris, Île-de-France, France",
	}}
	handler := handlers.NewGeolocationHandler(provider)

	req := httptest.NewRequest("GET", "/api/geocode?address=Paris", nil)
	w := httptest.NewRecorder()
	handler.Geocode(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Paris, Île-de-France, France", body["display_name"])
	assert.Equal(t, 48.8566, body["latitude"])
}

func TestGeocode_MissingAddress(t *testing.T) {
	handler := handlers.NewGeolocationHandler(&stubGeocodingProvider{})

	req := httptest.NewRequest("GET", "/api/geocode", nil)
	w := httptest.NewRecorder()
	handler.Geocode(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeocode_NoMatch(t *testing.T) {
	handler := handlers.NewGeolocationHandler(&stubGeocodingProvider{
		err: apperrors.NewNotFoundError("no results for address"),
	})

	req := httptest.NewRequest("GET", "/api/geocode?address=gibberish", nil)
	w := httptest.NewRecorder()
	handler.Geocode(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGeocode_UpstreamFailure(t *testing.T) {
	handler := handlers.NewGeolocationHandler(&stubGeocodingProvider{
		err: apperrors.NewExternalError("geocoding service unreachable", assert.AnError),
	})

	req := httptest.NewRequest("GET", "/api/geocode?address=Paris", nil)
	w := httptest.NewRecorder()
	handler.Geocode(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

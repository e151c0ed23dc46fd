package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/healthpal-app/backend/pkg/errors"
)

func TestNominatimProvider_Geocode_BestMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Paris, France", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "healthpal-backend-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522","display_name":"Paris, Île-de-France, France"}]`))
	}))
	defer server.Close()

	provider := NewNominatimProviderWithOptions(server.URL, "healthpal-backend-test", nil)
	location, err := provider.Geocode(context.Background(), "Paris, France")

	require.NoError(t, err)
	assert.Equal(t, 48.8566, location.Coordinate.Latitude)
	assert.Equal(t, 2.3522, location.Coordinate.Longitude)
	assert.Equal(t, "Paris, Île-de-France, France", location.DisplayName)
}

func TestNominatimProvider_Geocode_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	provider := NewNominatimProviderWithOptions(server.URL, "test", nil)
	_, err := provider.Geocode(context.Background(), "gibberish nowhere")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestNominatimProvider_Geocode_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewNominatimProviderWithOptions(server.URL, "test", nil)
	_, err := provider.Geocode(context.Background(), "Paris, France")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
}

func TestNominatimProvider_Geocode_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewNominatimProviderWithOptions(server.URL, "test", nil)
	_, err := provider.Geocode(context.Background(), "Paris, France")

	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimited(err))
}

func TestNominatimProvider_Geocode_EmptyAddress(t *testing.T) {
	provider := NewNominatimProviderWithOptions("http://unused.invalid", "test", nil)
	_, err := provider.Geocode(context.Background(), "   ")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/healthpal-app/backend/internal/domain/providers"
	apperrors "github.com/healthpal-app/backend/pkg/errors"
)

// GeolocationHandler handles geolocation endpoints.
type GeolocationHandler struct {
	provider providers.GeocodingProvider
}

// NewGeolocationHandler creates a new geolocation handler.
func NewGeolocationHandler(provider providers.GeocodingProvider) *GeolocationHandler {
	return &GeolocationHandler{provider: provider}
}

// Geocode handles GET /api/geocode?address=...
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		respondWithFailure(w, http.StatusBadRequest, "address parameter is required", nil)
		return
	}

	location, err := h.provider.Geocode(r.Context(), address)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeNotFound {
			respondWithFailure(w, http.StatusNotFound, "no match for the provided address", nil)
			return
		}
		respondWithFailure(w, http.StatusBadGateway, "failed to geocode address", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"address":      address,
		"display_name": location.DisplayName,
		"latitude":     location.Coordinate.Latitude,
		"longitude":    location.Coordinate.Longitude,
	})
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/healthpal-app/backend/internal/domain/entities"
	apperrors "github.com/healthpal-app/backend/pkg/errors"
)

// FacilityLocator resolves a location query to ranked nearby facilities
type FacilityLocator interface {
	Locate(ctx context.Context, query entities.LocationQuery) (*entities.FacilitySearchResult, error)
}

// FacilityLocatorHandler handles nearby-facility HTTP requests
type FacilityLocatorHandler struct {
	locator FacilityLocator
}

// NewFacilityLocatorHandler creates a new facility locator handler
func NewFacilityLocatorHandler(locator FacilityLocator) *FacilityLocatorHandler {
	return &FacilityLocatorHandler{locator: locator}
}

// FindNearby handles GET /api/facilities/nearby?address=... or ?lat=...&lon=...
func (h *FacilityLocatorHandler) FindNearby(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	address := strings.TrimSpace(params.Get("address"))
	latStr := strings.TrimSpace(params.Get("lat"))
	lonStr := strings.TrimSpace(params.Get("lon"))

	query := entities.LocationQuery{Address: address}

	if latStr != "" || lonStr != "" {
		if latStr == "" || lonStr == "" {
			respondWithFailure(w, http.StatusBadRequest, "lat and lon must be provided together", nil)
			return
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			respondWithFailure(w, http.StatusBadRequest, "invalid lat parameter", nil)
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			respondWithFailure(w, http.StatusBadRequest, "invalid lon parameter", nil)
			return
		}
		query.Coordinate = &entities.Coordinate{Latitude: lat, Longitude: lon}
	}

	// Reject malformed input before any outbound call is made.
	if err := query.Validate(); err != nil {
		respondWithFailure(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.locator.Locate(r.Context(), query)
	if err != nil {
		h.writeLocateError(w, err)
		return
	}

	payload := map[string]interface{}{
		"success":           true,
		"facilities":        result.Facilities,
		"location_searched": result.LocationLabel,
	}
	if result.Message != "" {
		payload["message"] = result.Message
	}
	respondWithJSON(w, http.StatusOK, payload)
}

func (h *FacilityLocatorHandler) writeLocateError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithFailure(w, http.StatusBadRequest, appErr.Message, nil)
		case apperrors.ErrorTypeNotFound:
			respondWithFailure(w, http.StatusNotFound, "could not find the provided location", nil)
		case apperrors.ErrorTypeExternal:
			respondWithFailure(w, http.StatusInternalServerError, upstreamMessage(appErr), appErr.Err)
		default:
			respondWithFailure(w, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}
	respondWithFailure(w, http.StatusInternalServerError, "internal server error", nil)
}

// upstreamMessage picks a user-facing message for an upstream failure based
// on the wrapped cause.
func upstreamMessage(err error) string {
	switch {
	case apperrors.IsTimeout(err):
		return "The facility data service timed out. Please try again."
	case apperrors.IsRateLimited(err):
		return "The facility data service is receiving too many requests. Please retry shortly."
	default:
		return "Could not reach the mapping services. Please try again later."
	}
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithFailure(w http.ResponseWriter, statusCode int, message string, cause error) {
	payload := map[string]interface{}{
		"success": false,
		"message": message,
	}
	if cause != nil {
		payload["error"] = cause.Error()
	}
	respondWithJSON(w, statusCode, payload)
}

package facilities

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/healthpal-app/backend/internal/domain/entities"
	"github.com/healthpal-app/backend/internal/domain/providers"
	apperrors "github.com/healthpal-app/backend/pkg/errors"
)

const (
	overpassInterpreterURL = "https://overpass-api.de/api/interpreter"
	defaultHTTPTimeout     = 30 * time.Second

	// Placeholder name for unnamed map features.
	unknownFacilityName = "Unknown Facility"
	unknownFacilityType = "Unknown"
)

// Amenity values that count as healthcare facilities.
const amenityFilter = "hospital|clinic|doctors"

// OverpassProvider implements FacilityDataProvider against an Overpass API
// endpoint over the OpenStreetMap dataset. Coverage is best-effort and
// crowd-sourced; results carry no persistent identity.
type OverpassProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewOverpassProvider creates a new Overpass facility data provider.
func NewOverpassProvider() providers.FacilityDataProvider {
	return NewOverpassProviderWithOptions(overpassInterpreterURL, nil)
}

// NewOverpassProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewOverpassProviderWithOptions(baseURL string, httpClient *http.Client) providers.FacilityDataProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = overpassInterpreterURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &OverpassProvider{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// FindNearby queries Overpass for healthcare amenities within radiusKm of center.
func (o *OverpassProvider) FindNearby(ctx context.Context, center entities.Coordinate, radiusKm float64) ([]entities.FacilityCandidate, error) {
	query := buildQuery(center, radiusKm)

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build facility query", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("facility data source unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperrors.NewExternalError("facility data source rejected the request",
			fmt.Errorf("status %d: %w", resp.StatusCode, apperrors.ErrRateLimited))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError("facility data source failed",
			fmt.Errorf("facility query returned status %d", resp.StatusCode))
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode facility response", err)
	}

	candidates := make([]entities.FacilityCandidate, 0, len(payload.Elements))
	for _, element := range payload.Elements {
		candidates = append(candidates, normalizeElement(element))
	}

	return candidates, nil
}

// buildQuery assembles an Overpass QL query for healthcare amenities and
// health centres around the given point. Way and relation features are
// requested with their computed centers.
func buildQuery(center entities.Coordinate, radiusKm float64) string {
	radiusMeters := int(radiusKm * 1000)
	around := fmt.Sprintf("(around:%d,%f,%f)", radiusMeters, center.Latitude, center.Longitude)

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, kind := range []string{"node", "way", "relation"} {
		fmt.Fprintf(&b, `%s["amenity"~"^(%s)$"]%s;`, kind, amenityFilter, around)
		fmt.Fprintf(&b, `%s["healthcare"="centre"]%s;`, kind, around)
	}
	b.WriteString(");out center;")
	return b.String()
}

func normalizeElement(element overpassElement) entities.FacilityCandidate {
	candidate := entities.FacilityCandidate{
		Name:         unknownFacilityName,
		FacilityType: unknownFacilityType,
	}

	if name := element.Tags["name"]; name != "" {
		candidate.Name = name
	}
	if amenity := element.Tags["amenity"]; amenity != "" {
		candidate.FacilityType = amenity
	}
	if healthcare := element.Tags["healthcare"]; healthcare != "" {
		candidate.Specialties = []string{healthcare}
	}

	candidate.Address = joinAddress(element.Tags)
	candidate.Coordinate = elementCoordinate(element)

	return candidate
}

// joinAddress builds a display address from whatever addr:* fragments the
// feature carries. Empty when the feature has none; the caller substitutes
// the resolved location label in that case.
func joinAddress(tags map[string]string) string {
	parts := make([]string, 0, 6)
	for _, key := range []string{"addr:full", "addr:street", "addr:city", "addr:state", "addr:postcode", "addr:country"} {
		if value := tags[key]; value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, ", ")
}

func elementCoordinate(element overpassElement) *entities.Coordinate {
	if element.Lat != nil && element.Lon != nil {
		return &entities.Coordinate{Latitude: *element.Lat, Longitude: *element.Lon}
	}
	if element.Center != nil {
		return &entities.Coordinate{Latitude: element.Center.Lat, Longitude: element.Center.Lon}
	}
	return nil
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/healthpal-app/backend/internal/domain/entities"
	"github.com/healthpal-app/backend/internal/domain/providers"
	apperrors "github.com/healthpal-app/backend/pkg/errors"
)

const (
	nominatimSearchURL = "https://nominatim.openstreetmap.org"
	defaultHTTPTimeout = 10 * time.Second
)

// NominatimProvider implements GeocodingProvider against the public
// Nominatim search API. One outbound call per invocation, best match only,
// no retry at this layer.
type NominatimProvider struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewNominatimProvider creates a new Nominatim geocoding provider.
func NewNominatimProvider(userAgent string) providers.GeocodingProvider {
	return NewNominatimProviderWithOptions(nominatimSearchURL, userAgent, nil)
}

// NewNominatimProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewNominatimProviderWithOptions(baseURL, userAgent string, httpClient *http.Client) providers.GeocodingProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = nominatimSearchURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &NominatimProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
	}
}

// Geocode converts a free-text address to its best Nominatim match.
func (n *NominatimProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedLocation, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	params := url.Values{}
	params.Set("q", trimmed)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", n.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build geocode request", err)
	}
	// Nominatim usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("geocoding service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperrors.NewExternalError("geocoding service rejected the request",
			fmt.Errorf("status %d: %w", resp.StatusCode, apperrors.ErrRateLimited))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError("geocoding service failed",
			fmt.Errorf("geocode request returned status %d", resp.StatusCode))
	}

	var matches []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, apperrors.NewExternalError("failed to decode geocode response", err)
	}

	if len(matches) == 0 {
		return nil, apperrors.NewNotFoundError("no results for address")
	}

	match := matches[0]
	lat, err := strconv.ParseFloat(match.Lat, 64)
	if err != nil {
		return nil, apperrors.NewExternalError("geocode response carried an invalid latitude", err)
	}
	lon, err := strconv.ParseFloat(match.Lon, 64)
	if err != nil {
		return nil, apperrors.NewExternalError("geocode response carried an invalid longitude", err)
	}

	return &providers.GeocodedLocation{
		Coordinate:  entities.Coordinate{Latitude: lat, Longitude: lon},
		DisplayName: match.DisplayName,
	}, nil
}

// Nominatim serializes coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

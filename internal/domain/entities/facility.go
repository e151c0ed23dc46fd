package entities

import (
	"fmt"
)

// Coordinate represents a geographical point
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate is within valid latitude/longitude ranges
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v is out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v is out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// LocationQuery is the discriminated input to a facility search: either a
// free-text address or an explicit coordinate, never both.
type LocationQuery struct {
	Address    string
	Coordinate *Coordinate
}

// Validate checks that exactly one of address or coordinate was supplied
func (q LocationQuery) Validate() error {
	if q.Address == "" && q.Coordinate == nil {
		return fmt.Errorf("either an address or coordinates must be provided")
	}
	if q.Address != "" && q.Coordinate != nil {
		return fmt.Errorf("provide either an address or coordinates, not both")
	}
	return nil
}

// FacilityCandidate is a raw facility record from the spatial data source.
// Candidates are request-scoped and never persisted.
type FacilityCandidate struct {
	Name         string      `json:"name"`
	Address      string      `json:"address"`
	FacilityType string      `json:"facility_type"`
	Specialties  []string    `json:"specialties,omitempty"`
	Coordinate   *Coordinate `json:"coordinate,omitempty"`
}

// RankedFacility is a candidate with its computed distance from the search
// center. DistanceKm is nil when the candidate carries no coordinate; such
// entries sort after all entries with a known distance.
type RankedFacility struct {
	FacilityCandidate
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Distance   string   `json:"distance"`
}

// FacilitySearchResult is the outcome of one nearby-facility request
type FacilitySearchResult struct {
	Facilities    []RankedFacility `json:"facilities"`
	LocationLabel string           `json:"location_searched"`
	Message       string           `json:"message,omitempty"`
}

package services

import (
	"fmt"
	"sort"

	"github.com/healthpal-app/backend/internal/domain/entities"
	"github.com/healthpal-app/backend/internal/domain/geo"
)

// Bound on the number of facilities returned per request.
const maxResults = 20

// rankCandidates attaches distances, sorts ascending with unknown-distance
// entries last (insertion order preserved among themselves), and truncates.
// Candidates without an address of their own get the resolved location label.
func rankCandidates(center entities.Coordinate, candidates []entities.FacilityCandidate, fallbackAddress string) []entities.RankedFacility {
	ranked := make([]entities.RankedFacility, 0, len(candidates))

	for _, candidate := range candidates {
		facility := entities.RankedFacility{
			FacilityCandidate: candidate,
			Distance:          "unknown",
		}
		if facility.Address == "" {
			facility.Address = fallbackAddress
		}
		if candidate.Coordinate != nil {
			km := geo.RoundKm1(geo.Haversine(center, *candidate.Coordinate))
			facility.DistanceKm = &km
			facility.Distance = fmt.Sprintf("%.1f km", km)
		}
		ranked = append(ranked, facility)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		left, right := ranked[i].DistanceKm, ranked[j].DistanceKm
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return *left < *right
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

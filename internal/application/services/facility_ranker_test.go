package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthpal-app/backend/internal/domain/entities"
)

func TestRankCandidates_UnknownDistancesSortLastInInsertionOrder(t *testing.T) {
	center := entities.Coordinate{Latitude: 0, Longitude: 0}
	candidates := []entities.FacilityCandidate{
		{Name: "no-coords-1"},
		candidateAt("far", 1.0, 0),
		{Name: "no-coords-2"},
		candidateAt("near", 0.1, 0),
	}

	ranked := rankCandidates(center, candidates, "somewhere")

	require.Len(t, ranked, 4)
	assert.Equal(t, "near", ranked[0].Name)
	assert.Equal(t, "far", ranked[1].Name)
	assert.Equal(t, "no-coords-1", ranked[2].Name)
	assert.Equal(t, "no-coords-2", ranked[3].Name)

	// Non-decreasing among known distances, unknowns flagged explicitly.
	require.NotNil(t, ranked[0].DistanceKm)
	require.NotNil(t, ranked[1].DistanceKm)
	assert.LessOrEqual(t, *ranked[0].DistanceKm, *ranked[1].DistanceKm)
	assert.Nil(t, ranked[2].DistanceKm)
	assert.Equal(t, "unknown", ranked[2].Distance)
	assert.Equal(t, "unknown", ranked[3].Distance)
}

func TestRankCandidates_TruncatesToTwenty(t *testing.T) {
	center := entities.Coordinate{Latitude: 0, Longitude: 0}
	candidates := make([]entities.FacilityCandidate, 0, 30)
	for i := 0; i < 30; i++ {
		candidates = append(candidates, candidateAt(fmt.Sprintf("f%d", i), float64(30-i)*0.01, 0))
	}

	ranked := rankCandidates(center, candidates, "somewhere")

	require.Len(t, ranked, 20)
	// The 20 nearest survive, in ascending order.
	assert.Equal(t, "f29", ranked[0].Name)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, *ranked[i-1].DistanceKm, *ranked[i].DistanceKm)
	}
}

func TestRankCandidates_DistanceRoundedToOneDecimal(t *testing.T) {
	center := entities.Coordinate{Latitude: 0, Longitude: 0}
	ranked := rankCandidates(center, []entities.FacilityCandidate{
		candidateAt("equatorial", 0, 1),
	}, "somewhere")

	require.Len(t, ranked, 1)
	require.NotNil(t, ranked[0].DistanceKm)
	assert.InDelta(t, 111.2, *ranked[0].DistanceKm, 0.5)
	assert.Equal(t, *ranked[0].DistanceKm, float64(int(*ranked[0].DistanceKm*10))/10)
	assert.Equal(t, fmt.Sprintf("%.1f km", *ranked[0].DistanceKm), ranked[0].Distance)
}

func TestRankCandidates_EmptyAddressFallsBackToLocationLabel(t *testing.T) {
	center := entities.Coordinate{Latitude: 0, Longitude: 0}
	ranked := rankCandidates(center, []entities.FacilityCandidate{
		{Name: "bare", Coordinate: &entities.Coordinate{Latitude: 0.1, Longitude: 0.1}},
		{Name: "addressed", Address: "1 Hospital Rd", Coordinate: &entities.Coordinate{Latitude: 0.2, Longitude: 0.2}},
	}, "Paris, France")

	require.Len(t, ranked, 2)
	assert.Equal(t, "Paris, France", ranked[0].Address)
	assert.Equal(t, "1 Hospital Rd", ranked[1].Address)
}

func TestRankCandidates_EmptyInput(t *testing.T) {
	ranked := rankCandidates(entities.Coordinate{}, nil, "anywhere")
	assert.Empty(t, ranked)
}

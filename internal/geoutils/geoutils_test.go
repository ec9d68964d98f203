package geoutils

import (
	"math"
	"testing"

	"relief_tracker/internal/models"
)

func area(id, ngoID uint, lat, lng, radius float64, active bool) models.NGOServiceArea {
	a := models.NGOServiceArea{
		NGOID:     ngoID,
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radius,
		IsActive:  active,
	}
	a.ID = id
	return a
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{23.81, 90.41, 23.83, 90.40},
		{0, 0, 0, 0},
		{-33.86, 151.21, 51.50, -0.12},
		{89.9, 179.9, -89.9, -179.9},
	}
	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v for %v", ab, ba, p)
		}
	}
	if d := DistanceKm(23.81, 90.41, 23.81, 90.41); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestDistanceKmKnownValues(t *testing.T) {
	// Dhaka city center to Uttara, roughly 2.3 km apart
	d := DistanceKm(23.81, 90.41, 23.83, 90.40)
	if d < 2.0 || d > 2.6 {
		t.Errorf("short hop distance = %v km, want ~2.3", d)
	}

	d = DistanceKm(23.81, 90.41, 24.00, 90.41)
	if d < 20.0 || d > 22.0 {
		t.Errorf("long hop distance = %v km, want ~21", d)
	}
}

func TestFindNGOsInRadiusCoverage(t *testing.T) {
	areas := []models.NGOServiceArea{
		area(1, 10, 23.81, 90.41, 5, true),
	}

	matches := FindNGOsInRadius(23.83, 90.40, areas)
	if len(matches) != 1 || matches[0].NGOID != 10 {
		t.Fatalf("expected NGO 10 to cover nearby point, got %+v", matches)
	}

	matches = FindNGOsInRadius(24.00, 90.41, areas)
	if len(matches) != 0 {
		t.Fatalf("expected no coverage 21 km out, got %+v", matches)
	}
}

func TestFindNGOsInRadiusSkipsInactiveAndZeroRadius(t *testing.T) {
	areas := []models.NGOServiceArea{
		area(1, 10, 23.81, 90.41, 5, false),
		area(2, 11, 23.81, 90.41, 0, true),
	}

	// Even the zero-radius area's own center must not match.
	if got := FindNGOsInRadius(23.81, 90.41, areas); len(got) != 0 {
		t.Fatalf("inactive/zero-radius areas matched: %+v", got)
	}
}

func TestFindNGOsInRadiusOrdering(t *testing.T) {
	areas := []models.NGOServiceArea{
		area(1, 30, 23.90, 90.41, 50, true),
		area(2, 20, 23.82, 90.41, 50, true),
		// Same center as area 2 but lower NGO ID: tie broken by NGO ID.
		area(3, 10, 23.82, 90.41, 50, true),
	}

	matches := FindNGOsInRadius(23.81, 90.41, areas)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	if matches[0].NGOID != 10 || matches[1].NGOID != 20 || matches[2].NGOID != 30 {
		t.Errorf("wrong order: %+v", matches)
	}
}

func TestFindNGOsInRadiusNoDedupAcrossAreas(t *testing.T) {
	areas := []models.NGOServiceArea{
		area(1, 10, 23.81, 90.41, 5, true),
		area(2, 10, 23.82, 90.41, 5, true),
	}

	matches := FindNGOsInRadius(23.815, 90.41, areas)
	if len(matches) != 2 {
		t.Fatalf("overlapping areas of one NGO should each match, got %+v", matches)
	}
}

func TestFindNGOsInRadiusEmptyInput(t *testing.T) {
	if got := FindNGOsInRadius(23.81, 90.41, nil); len(got) != 0 {
		t.Fatalf("nil areas should produce empty result, got %+v", got)
	}
}

func TestCanNGOServeLocation(t *testing.T) {
	areas := []models.NGOServiceArea{
		area(1, 10, 23.81, 90.41, 5, true),
		area(2, 11, 23.81, 90.41, 5, false),
	}

	if !CanNGOServeLocation(10, 23.83, 90.40, areas) {
		t.Error("NGO 10 should serve a point 2.3 km from its center")
	}
	if CanNGOServeLocation(10, 24.00, 90.41, areas) {
		t.Error("NGO 10 should not serve a point 21 km out")
	}
	if CanNGOServeLocation(11, 23.81, 90.41, areas) {
		t.Error("inactive area should never serve, even at its own center")
	}
	if CanNGOServeLocation(99, 23.81, 90.41, areas) {
		t.Error("unknown NGO should not serve anywhere")
	}
}

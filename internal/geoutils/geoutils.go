// Package geoutils holds the geographic matching core: great-circle
// distances and radius containment checks against NGO service areas.
package geoutils

import (
	"math"
	"sort"

	"relief_tracker/internal/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// AreaMatch is one qualifying service area for a target point. An NGO with
// several overlapping areas appears once per area; callers that want a
// single listing per NGO dedup on NGOID.
type AreaMatch struct {
	NGOID      uint    `json:"ngo_id"`
	AreaID     uint    `json:"area_id"`
	DistanceKm float64 `json:"distance_km"`
}

// DistanceKm computes the great-circle distance in kilometers between two
// coordinates given in decimal degrees. Out-of-range inputs are the caller's
// problem; the formula is always defined for finite degree pairs.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := toRadians(lat1)
	radLat2 := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// FindNGOsInRadius returns the service areas whose coverage circle contains
// the point, nearest first (ties broken by NGO ID for determinism).
// Inactive areas and areas without a positive radius never match. An empty
// result is the "no coverage" answer, not an error.
func FindNGOsInRadius(lat, lng float64, areas []models.NGOServiceArea) []AreaMatch {
	matches := []AreaMatch{}
	for _, area := range areas {
		if !area.IsActive || area.RadiusKm <= 0 {
			continue
		}
		distance := DistanceKm(lat, lng, area.Latitude, area.Longitude)
		if distance <= area.RadiusKm {
			matches = append(matches, AreaMatch{
				NGOID:      area.NGOID,
				AreaID:     area.ID,
				DistanceKm: distance,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].NGOID < matches[j].NGOID
	})
	return matches
}

// CanNGOServeLocation reports whether any active area of the given NGO
// contains the point.
func CanNGOServeLocation(ngoID uint, lat, lng float64, areas []models.NGOServiceArea) bool {
	for _, area := range areas {
		if area.NGOID != ngoID || !area.IsActive || area.RadiusKm <= 0 {
			continue
		}
		if DistanceKm(lat, lng, area.Latitude, area.Longitude) <= area.RadiusKm {
			return true
		}
	}
	return false
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

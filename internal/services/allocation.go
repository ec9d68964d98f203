package services

import (
	"errors"

	"gorm.io/gorm"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/geoutils"
	"relief_tracker/internal/models"
)

// AllocationQuery describes one allocation lookup: a target location (raw
// coordinates or an event reference), an optional need type, and an optional
// cap on service-area radius.
type AllocationQuery struct {
	Latitude      *float64
	Longitude     *float64
	EventID       *uint
	NeedType      string
	MaxDistanceKm *float64
	Matcher       TypeMatcher
}

// NGOCandidate is one allocation proposal. An NGO with several qualifying
// areas appears once per area; AreaID lets the caller dedup.
type NGOCandidate struct {
	geoutils.AreaMatch
	NGO                models.NGO                    `json:"ngo"`
	AvailableResources []models.NGOResourceInventory `json:"available_resources,omitempty"`
}

// Allocate proposes NGOs able to serve the given location, nearest first.
// With a need type, candidates are narrowed to NGOs whose focus area or
// support type matches and each carries its available stock of matching
// resources. An empty result means no coverage, not an error.
func Allocate(db *gorm.DB, q AllocationQuery) ([]NGOCandidate, error) {
	lat, lng, err := resolveLocation(db, q)
	if err != nil {
		return nil, err
	}

	areasQ := db.Preload("NGO").
		Where("is_active = ?", true).
		Where("radius_km > 0")
	if q.MaxDistanceKm != nil {
		areasQ = areasQ.Where("radius_km <= ?", *q.MaxDistanceKm)
	}
	var areas []models.NGOServiceArea
	if err := areasQ.Find(&areas).Error; err != nil {
		return nil, err
	}

	matches := geoutils.FindNGOsInRadius(lat, lng, areas)

	areaByID := make(map[uint]models.NGOServiceArea, len(areas))
	for _, a := range areas {
		areaByID[a.ID] = a
	}

	matcher := q.Matcher
	if matcher == nil {
		matcher = SubstringMatcher
	}

	candidates := []NGOCandidate{}
	for _, m := range matches {
		ngo := areaByID[m.AreaID].NGO
		if q.NeedType != "" &&
			!matcher(q.NeedType, ngo.FocusArea) &&
			!matcher(q.NeedType, ngo.SupportType) {
			continue
		}
		candidates = append(candidates, NGOCandidate{AreaMatch: m, NGO: ngo})
	}

	if q.NeedType != "" && len(candidates) > 0 {
		if err := attachResources(db, candidates, q.NeedType); err != nil {
			return nil, err
		}
	}
	return candidates, nil
}

// resolveLocation turns the query into a concrete coordinate. An event
// without a stored coordinate is NotFound: geocoding previously failed or
// was skipped, which is expected, but there is nothing to match against.
func resolveLocation(db *gorm.DB, q AllocationQuery) (float64, float64, error) {
	if q.EventID != nil {
		var event models.Event
		if err := db.First(&event, *q.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, 0, &apperrors.NotFoundError{Resource: "event", ID: *q.EventID}
			}
			return 0, 0, err
		}
		if event.Latitude == nil || event.Longitude == nil {
			return 0, 0, &apperrors.NotFoundError{Resource: "event location", ID: *q.EventID}
		}
		return *event.Latitude, *event.Longitude, nil
	}

	if q.Latitude == nil || q.Longitude == nil {
		return 0, 0, &apperrors.ValidationError{Msg: "either coordinates (latitude/longitude) or an event ID is required"}
	}
	return *q.Latitude, *q.Longitude, nil
}

// attachResources loads, in one query, each candidate NGO's available stock
// whose resource type matches the need.
func attachResources(db *gorm.DB, candidates []NGOCandidate, needType string) error {
	ngoIDs := make([]uint, 0, len(candidates))
	seen := make(map[uint]bool)
	for _, c := range candidates {
		if !seen[c.NGOID] {
			seen[c.NGOID] = true
			ngoIDs = append(ngoIDs, c.NGOID)
		}
	}

	var rows []models.NGOResourceInventory
	err := db.Where("ngo_id IN ?", ngoIDs).
		Where("LOWER(resource_type) LIKE ?", likePattern(needType)).
		Where("is_available = ?", true).
		Where("quantity > 0").
		Find(&rows).Error
	if err != nil {
		return err
	}

	byNGO := make(map[uint][]models.NGOResourceInventory)
	for _, r := range rows {
		byNGO[r.NGOID] = append(byNGO[r.NGOID], r)
	}
	for i := range candidates {
		candidates[i].AvailableResources = byNGO[candidates[i].NGOID]
	}
	return nil
}

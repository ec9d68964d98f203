package services_test

import (
	"testing"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/models"
	"relief_tracker/internal/services"
)

func TestAllocateByCoordinates(t *testing.T) {
	db := newTestDB(t)
	near := seedNGO(t, db, "Near NGO", "Medical relief", "Medical")
	far := seedNGO(t, db, "Far NGO", "Medical relief", "Medical")
	seedArea(t, db, near.ID, 23.81, 90.41, 5, true)
	seedArea(t, db, far.ID, 24.50, 90.41, 5, true)

	candidates, err := services.Allocate(db, services.AllocationQuery{
		Latitude:  floatPtr(23.83),
		Longitude: floatPtr(90.40),
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(candidates) != 1 || candidates[0].NGOID != near.ID {
		t.Fatalf("want only the near NGO, got %+v", candidates)
	}
	if candidates[0].DistanceKm <= 0 || candidates[0].DistanceKm > 5 {
		t.Errorf("implausible distance %v", candidates[0].DistanceKm)
	}
}

func TestAllocateNoCoverageIsEmptyNotError(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Near NGO", "Medical", "Medical")
	seedArea(t, db, ngo.ID, 23.81, 90.41, 5, true)

	candidates, err := services.Allocate(db, services.AllocationQuery{
		Latitude:  floatPtr(24.00),
		Longitude: floatPtr(90.41),
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("want empty result 21 km out, got %+v", candidates)
	}
}

func TestAllocateNeedTypeFilterAndResources(t *testing.T) {
	db := newTestDB(t)
	medics := seedNGO(t, db, "Medics", "Medical relief", "Medical")
	kitchen := seedNGO(t, db, "Kitchen", "Food distribution", "Food")
	seedArea(t, db, medics.ID, 23.81, 90.41, 10, true)
	seedArea(t, db, kitchen.ID, 23.81, 90.41, 10, true)

	seedInventory(t, db, medics.ID, "Medical", "Bandages", 50)
	seedInventory(t, db, medics.ID, "Medical", "Empty kit", 0)
	seedInventory(t, db, medics.ID, "Food", "Biscuits", 100)

	candidates, err := services.Allocate(db, services.AllocationQuery{
		Latitude:  floatPtr(23.82),
		Longitude: floatPtr(90.41),
		NeedType:  "medical",
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(candidates) != 1 || candidates[0].NGOID != medics.ID {
		t.Fatalf("want only the medical NGO, got %+v", candidates)
	}
	res := candidates[0].AvailableResources
	if len(res) != 1 || res[0].ResourceName != "Bandages" {
		t.Fatalf("want only in-stock matching resources, got %+v", res)
	}
}

func TestAllocateMaxDistanceCapsRadius(t *testing.T) {
	db := newTestDB(t)
	wide := seedNGO(t, db, "Wide NGO", "Medical", "Medical")
	seedArea(t, db, wide.ID, 23.81, 90.41, 50, true)

	candidates, err := services.Allocate(db, services.AllocationQuery{
		Latitude:      floatPtr(23.82),
		Longitude:     floatPtr(90.41),
		MaxDistanceKm: floatPtr(10),
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("50 km area should be excluded by 10 km cap, got %+v", candidates)
	}
}

func TestAllocateByEvent(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Near NGO", "Medical", "Medical")
	seedArea(t, db, ngo.ID, 23.81, 90.41, 5, true)

	located := models.Event{Description: "flood", Location: "Dhaka", Latitude: floatPtr(23.82), Longitude: floatPtr(90.41)}
	if err := db.Create(&located).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	unlocated := models.Event{Description: "fire", Location: "unknown village"}
	if err := db.Create(&unlocated).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}

	candidates, err := services.Allocate(db, services.AllocationQuery{EventID: &located.ID})
	if err != nil {
		t.Fatalf("allocate by event: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("want 1 candidate, got %+v", candidates)
	}

	// A stored event without a coordinate is a normal absence of data,
	// reported as not-found rather than a crash.
	_, err = services.Allocate(db, services.AllocationQuery{EventID: &unlocated.ID})
	if _, ok := err.(*apperrors.NotFoundError); !ok {
		t.Fatalf("want NotFoundError for event without coordinate, got %T: %v", err, err)
	}

	_, err = services.Allocate(db, services.AllocationQuery{})
	if _, ok := err.(*apperrors.ValidationError); !ok {
		t.Fatalf("want ValidationError without location, got %T: %v", err, err)
	}
}

func TestAllocateCustomMatcher(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Any NGO", "General", "General")
	seedArea(t, db, ngo.ID, 23.81, 90.41, 10, true)

	rejectAll := func(needType, candidate string) bool { return false }
	candidates, err := services.Allocate(db, services.AllocationQuery{
		Latitude:  floatPtr(23.82),
		Longitude: floatPtr(90.41),
		NeedType:  "anything",
		Matcher:   rejectAll,
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("reject-all matcher should drop every candidate, got %+v", candidates)
	}
}

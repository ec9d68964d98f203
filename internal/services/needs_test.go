package services_test

import (
	"fmt"
	"testing"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/services"
)

func TestIdentifyNeedValidation(t *testing.T) {
	db := newTestDB(t)
	victim := seedVictim(t, db, "Amina")

	need, err := services.IdentifyNeed(db, victim.ID, "Shelter", "high", "")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if need.Status != "pending" {
		t.Errorf("status = %q, want pending", need.Status)
	}
	if need.DateAddressed != nil {
		t.Error("fresh need should have no dateAddressed")
	}

	if _, err := services.IdentifyNeed(db, victim.ID, "Shelter", "urgent", ""); err == nil {
		t.Fatal("bad urgency should be rejected")
	} else if _, ok := err.(*apperrors.ValidationError); !ok {
		t.Fatalf("want ValidationError, got %T: %v", err, err)
	}

	if _, err := services.IdentifyNeed(db, 9999, "Shelter", "high", ""); err == nil {
		t.Fatal("unknown victim should be rejected")
	} else if _, ok := err.(*apperrors.NotFoundError); !ok {
		t.Fatalf("want NotFoundError, got %T: %v", err, err)
	}
}

func TestResolveNeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	victim := seedVictim(t, db, "Amina")
	need, err := services.IdentifyNeed(db, victim.ID, "Shelter", "high", "")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}

	first, err := services.ResolveNeed(db, need.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first.Status != "addressed" || first.DateAddressed == nil {
		t.Fatalf("resolve did not address the need: %+v", first)
	}

	second, err := services.ResolveNeed(db, need.ID)
	if err != nil {
		t.Fatalf("second resolve should be a no-op, got %v", err)
	}
	if !second.DateAddressed.Equal(*first.DateAddressed) {
		t.Error("second resolve must not move dateAddressed")
	}
}

func TestFindMatchingNGOsCapAndFilter(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 7; i++ {
		seedNGO(t, db, fmt.Sprintf("Shelter NGO %d", i), "Shelter and housing", "Shelter")
	}
	inactive := seedNGO(t, db, "Dormant", "Shelter", "Shelter")
	db.Model(&inactive).Update("is_active", false)
	seedNGO(t, db, "Medics", "Medical", "Medical")

	ngos, err := services.FindMatchingNGOs(db, "shelter")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(ngos) != 5 {
		t.Fatalf("result should be capped at 5, got %d", len(ngos))
	}
	for _, ngo := range ngos {
		if !ngo.IsActive {
			t.Errorf("inactive NGO %d surfaced", ngo.ID)
		}
	}
}

func TestDeleteNeedBlockedByRequests(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Shelter NGO", "Shelter", "Shelter")
	victim := seedVictim(t, db, "Amina")

	need, err := services.IdentifyNeed(db, victim.ID, "Shelter", "high", "")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if _, err := services.CreateServiceRequest(db, services.CreateRequestInput{
		VictimID:     victim.ID,
		NGOID:        ngo.ID,
		RequestType:  "Shelter",
		UrgencyLevel: "high",
	}); err != nil {
		t.Fatalf("create request: %v", err)
	}

	err = services.DeleteNeed(db, need.ID)
	if _, ok := err.(*apperrors.ConflictError); !ok {
		t.Fatalf("want ConflictError, got %T: %v", err, err)
	}
}

func TestGetNeedComposedView(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Shelter NGO", "Shelter", "Shelter")
	victim := seedVictim(t, db, "Amina")

	need, err := services.IdentifyNeed(db, victim.ID, "Shelter", "medium", "")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if _, err := services.CreateServiceRequest(db, services.CreateRequestInput{
		VictimID:     victim.ID,
		NGOID:        ngo.ID,
		RequestType:  "Shelter",
		UrgencyLevel: "medium",
	}); err != nil {
		t.Fatalf("create request: %v", err)
	}

	detail, err := services.GetNeed(db, need.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.ServiceRequests) != 1 {
		t.Errorf("want 1 related request, got %d", len(detail.ServiceRequests))
	}
	if len(detail.MatchingNGOs) != 1 || detail.MatchingNGOs[0].ID != ngo.ID {
		t.Errorf("matching NGOs wrong: %+v", detail.MatchingNGOs)
	}
}

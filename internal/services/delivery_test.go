package services_test

import (
	"testing"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/models"
	"relief_tracker/internal/services"
)

func TestLogDeliveryActivatesService(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Medics", "Medical", "Medical")
	victim := seedVictim(t, db, "Amina")
	staff := seedStaff(t, db, ngo.ID, "Karim")
	svc := seedService(t, db, victim.ID, ngo.ID, "pending")

	log, err := services.LogDelivery(db, services.DeliveryInput{
		ServiceID:           svc.ID,
		StaffID:             staff.ID,
		Location:            "Mirpur camp",
		EffectivenessRating: intPtr(4),
		FollowupNeeded:      true,
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if log.DeliveryDate.IsZero() {
		t.Error("deliveryDate should default to now")
	}

	var reloaded models.NGOServiceProvided
	if err := db.First(&reloaded, svc.ID).Error; err != nil {
		t.Fatalf("reload service: %v", err)
	}
	if reloaded.Status != "active" {
		t.Errorf("first delivery must activate the service, status = %q", reloaded.Status)
	}

	// A second delivery leaves the already-active service alone.
	if _, err := services.LogDelivery(db, services.DeliveryInput{ServiceID: svc.ID, StaffID: staff.ID}); err != nil {
		t.Fatalf("second log: %v", err)
	}
	logs, err := services.ListDeliveries(db, services.DeliveryFilter{ServiceID: &svc.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("want 2 append-only logs, got %d", len(logs))
	}
}

func TestLogDeliveryChecks(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Medics", "Medical", "Medical")
	other := seedNGO(t, db, "Kitchen", "Food", "Food")
	victim := seedVictim(t, db, "Amina")
	staff := seedStaff(t, db, ngo.ID, "Karim")
	foreign := seedStaff(t, db, other.ID, "Rahim")
	svc := seedService(t, db, victim.ID, ngo.ID, "pending")

	_, err := services.LogDelivery(db, services.DeliveryInput{ServiceID: 9999, StaffID: staff.ID})
	if _, ok := err.(*apperrors.NotFoundError); !ok {
		t.Fatalf("unknown service: want NotFoundError, got %T: %v", err, err)
	}

	_, err = services.LogDelivery(db, services.DeliveryInput{ServiceID: svc.ID, StaffID: 9999})
	if _, ok := err.(*apperrors.NotFoundError); !ok {
		t.Fatalf("unknown staff: want NotFoundError, got %T: %v", err, err)
	}

	_, err = services.LogDelivery(db, services.DeliveryInput{ServiceID: svc.ID, StaffID: foreign.ID})
	if _, ok := err.(*apperrors.ConflictError); !ok {
		t.Fatalf("foreign staff: want ConflictError, got %T: %v", err, err)
	}

	for _, rating := range []int{0, 6, -1} {
		_, err = services.LogDelivery(db, services.DeliveryInput{
			ServiceID: svc.ID, StaffID: staff.ID, EffectivenessRating: intPtr(rating),
		})
		if _, ok := err.(*apperrors.ValidationError); !ok {
			t.Fatalf("rating %d: want ValidationError, got %T: %v", rating, err, err)
		}
	}

	// None of the failed attempts may have activated the service.
	var reloaded models.NGOServiceProvided
	if err := db.First(&reloaded, svc.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != "pending" {
		t.Errorf("failed logs must not touch service status, got %q", reloaded.Status)
	}
}

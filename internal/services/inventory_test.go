package services_test

import (
	"sync"
	"testing"
	"time"

	"relief_tracker/internal/apperrors"
	"relief_tracker/internal/services"
)

func TestCreateInventoryItemValidation(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Relief One", "Medical", "Medical")

	item := seedInventory(t, db, ngo.ID, "Food", "Rice", 10)
	if !item.IsAvailable {
		t.Error("new item should be available")
	}

	bad := item
	bad.ID = 0
	bad.Quantity = -1
	if err := services.CreateInventoryItem(db, &bad); err == nil {
		t.Fatal("negative quantity should be rejected")
	} else if _, ok := err.(*apperrors.ValidationError); !ok {
		t.Fatalf("want ValidationError, got %T: %v", err, err)
	}

	orphan := item
	orphan.ID = 0
	orphan.NGOID = 9999
	if err := services.CreateInventoryItem(db, &orphan); err == nil {
		t.Fatal("unknown ngo should be rejected")
	} else if _, ok := err.(*apperrors.ValidationError); !ok {
		t.Fatalf("want ValidationError, got %T: %v", err, err)
	}
}

func TestConsumeInventoryDepletesAndFlags(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Relief One", "Food", "Food")
	item := seedInventory(t, db, ngo.ID, "Food", "Rice", 3)

	got, err := services.ConsumeInventory(db, item.ID, 3)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if got.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", got.Quantity)
	}
	if got.IsAvailable {
		t.Error("item at zero stock should be flagged unavailable")
	}

	_, err = services.ConsumeInventory(db, item.ID, 1)
	if _, ok := err.(*apperrors.InsufficientStockError); !ok {
		t.Fatalf("want InsufficientStockError, got %T: %v", err, err)
	}
}

func TestConsumeInventoryConcurrentNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Relief One", "Food", "Food")
	item := seedInventory(t, db, ngo.ID, "Food", "Rice", 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = services.ConsumeInventory(db, item.ID, 6)
		}(i)
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		switch err.(type) {
		case nil:
			ok++
		case *apperrors.InsufficientStockError:
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || short != 1 {
		t.Fatalf("want exactly one success and one stock error, got %d/%d", ok, short)
	}

	final, err := services.GetInventoryItem(db, item.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if final.Quantity != 4 {
		t.Errorf("final quantity = %d, want 4", final.Quantity)
	}
}

func TestConsumeInventoryUnknownItem(t *testing.T) {
	db := newTestDB(t)
	_, err := services.ConsumeInventory(db, 42, 1)
	if _, ok := err.(*apperrors.NotFoundError); !ok {
		t.Fatalf("want NotFoundError, got %T: %v", err, err)
	}
}

func TestListAvailableInventoryFilters(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Relief One", "Medical", "Medical")

	seedInventory(t, db, ngo.ID, "Medical", "Bandages", 50)
	seedInventory(t, db, ngo.ID, "Food", "Rice", 20)
	empty := seedInventory(t, db, ngo.ID, "Medical", "Syringes", 0)

	// Quantity is authoritative: an empty row stays flagged available but
	// must never be offered.
	if empty.IsAvailable != true {
		t.Fatal("seed precondition broken")
	}

	paused := seedInventory(t, db, ngo.ID, "Medical", "Gloves", 30)
	if _, err := services.UpdateInventoryItem(db, paused.ID, services.InventoryUpdate{IsAvailable: boolPtr(false)}); err != nil {
		t.Fatalf("pause item: %v", err)
	}

	expired := seedInventory(t, db, ngo.ID, "Medical", "Old saline", 10)
	past := time.Now().Add(-24 * time.Hour)
	if _, err := services.UpdateInventoryItem(db, expired.ID, services.InventoryUpdate{ExpiryDate: &past}); err != nil {
		t.Fatalf("expire item: %v", err)
	}

	now := time.Now()
	items, err := services.ListAvailableInventory(db, &ngo.ID, "medi", &now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ResourceName != "Bandages" {
		t.Fatalf("want only Bandages, got %+v", items)
	}
}

func TestDeleteInventoryItemBlockedByServiceItems(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNGO(t, db, "Relief One", "Food", "Food")
	victim := seedVictim(t, db, "Amina")
	item := seedInventory(t, db, ngo.ID, "Food", "Rice", 10)

	req, err := services.CreateServiceRequest(db, services.CreateRequestInput{
		VictimID:     victim.ID,
		NGOID:        ngo.ID,
		RequestType:  "Food",
		UrgencyLevel: "high",
		ServiceItems: []services.ServiceItemInput{
			{ServiceType: "Food", Quantity: intPtr(2), InventoryID: &item.ID},
		},
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	err = services.DeleteInventoryItem(db, item.ID)
	if _, ok := err.(*apperrors.ConflictError); !ok {
		t.Fatalf("want ConflictError, got %T: %v", err, err)
	}

	if err := services.DeleteServiceRequest(db, req.ID); err != nil {
		t.Fatalf("delete request: %v", err)
	}
	if err := services.DeleteInventoryItem(db, item.ID); err != nil {
		t.Fatalf("delete after cascade should succeed: %v", err)
	}
}

package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"relief_tracker/internal/config"
	"relief_tracker/internal/models"
)

// newTestDB opens a fresh in-memory database migrated with the full schema.
// A single connection keeps SQLite's writer model compatible with the
// concurrency tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedNGO(t *testing.T, db *gorm.DB, name, focusArea, supportType string) models.NGO {
	t.Helper()
	ngo := models.NGO{
		Name:        name,
		Email:       strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@ngo.test",
		FocusArea:   focusArea,
		SupportType: supportType,
		IsActive:    true,
	}
	if err := db.Create(&ngo).Error; err != nil {
		t.Fatalf("seed ngo: %v", err)
	}
	return ngo
}

func seedVictim(t *testing.T, db *gorm.DB, name string) models.Victim {
	t.Helper()
	victim := models.Victim{Name: name, Status: "injured"}
	if err := db.Create(&victim).Error; err != nil {
		t.Fatalf("seed victim: %v", err)
	}
	return victim
}

func seedStaff(t *testing.T, db *gorm.DB, ngoID uint, name string) models.NGOStaff {
	t.Helper()
	staff := models.NGOStaff{
		NGOID:    ngoID,
		Name:     name,
		Role:     "field officer",
		Email:    strings.ToLower(name) + "@relief.test",
		IsActive: true,
	}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return staff
}

func seedArea(t *testing.T, db *gorm.DB, ngoID uint, lat, lng, radius float64, active bool) models.NGOServiceArea {
	t.Helper()
	area := models.NGOServiceArea{
		NGOID:        ngoID,
		LocationName: "test area",
		Latitude:     lat,
		Longitude:    lng,
		RadiusKm:     radius,
		IsActive:     active,
	}
	if err := db.Create(&area).Error; err != nil {
		t.Fatalf("seed area: %v", err)
	}
	return area
}

func seedInventory(t *testing.T, db *gorm.DB, ngoID uint, resourceType, name string, quantity int) models.NGOResourceInventory {
	t.Helper()
	item := models.NGOResourceInventory{
		NGOID:        ngoID,
		ResourceType: resourceType,
		ResourceName: name,
		Quantity:     quantity,
		Unit:         "unit",
		IsAvailable:  true,
		LastUpdated:  time.Now(),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	return item
}

func seedService(t *testing.T, db *gorm.DB, victimID, ngoID uint, status string) models.NGOServiceProvided {
	t.Helper()
	svc := models.NGOServiceProvided{
		VictimID:    victimID,
		NGOID:       ngoID,
		ServiceType: "Medical",
		StartDate:   time.Now(),
		Status:      status,
	}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return svc
}

func uintPtr(v uint) *uint           { return &v }
func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func strPtr(v string) *string        { return &v }
func boolPtr(v bool) *bool           { return &v }
func timePtr(v time.Time) *time.Time { return &v }

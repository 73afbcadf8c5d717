package handler

import (
	"testing"
	"time"

	"github.com/zsbati/tenants/internal/database"
	"github.com/zsbati/tenants/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedTenant(t *testing.T, db *gorm.DB, name, bi string, roomID uint, deleted bool) *models.Tenant {
	t.Helper()
	tenant := models.Tenant{
		Name:      name,
		BI:        bi,
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		EntryDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RoomID:    roomID,
		RentCent:  50000,
	}
	if deleted {
		now := time.Now()
		tenant.DeletedAt = &now
	}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("seed tenant %s: %v", name, err)
	}
	return &tenant
}

func TestActiveTenantCountIgnoresDeleted(t *testing.T) {
	db := newTestDB(t)

	room := models.Room{Name: "101", Capacity: 2}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}

	a := seedTenant(t, db, "Ana", "BI-001", room.ID, false)
	seedTenant(t, db, "Bruno", "BI-002", room.ID, false)

	n, err := activeTenantCount(db, room.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("occupancy = %d, want 2", n)
	}

	now := time.Now()
	if err := db.Model(a).Update("deleted_at", now).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	n, err = activeTenantCount(db, room.ID)
	if err != nil {
		t.Fatalf("count after delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("occupancy after delete = %d, want 1", n)
	}
}

func TestActiveTenantCountPerRoom(t *testing.T) {
	db := newTestDB(t)

	r1 := models.Room{Name: "201", Capacity: 4}
	r2 := models.Room{Name: "202", Capacity: 1}
	if err := db.Create(&r1).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	if err := db.Create(&r2).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}

	seedTenant(t, db, "Carla", "BI-101", r1.ID, false)
	seedTenant(t, db, "Diogo", "BI-102", r1.ID, false)
	seedTenant(t, db, "Eva", "BI-103", r2.ID, false)
	seedTenant(t, db, "Filipe", "BI-104", r2.ID, true)

	n, err := activeTenantCount(db, r1.ID)
	if err != nil {
		t.Fatalf("count r1: %v", err)
	}
	if n != 2 {
		t.Fatalf("room 201 occupancy = %d, want 2", n)
	}

	n, err = activeTenantCount(db, r2.ID)
	if err != nil {
		t.Fatalf("count r2: %v", err)
	}
	if n != 1 {
		t.Fatalf("room 202 occupancy = %d, want 1", n)
	}
}

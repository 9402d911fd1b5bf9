package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bookiniad-backend/models"
)

// newTestDB opens an in-memory database with the full schema migrated. One
// connection only, so every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Accommodation{},
		&models.AccommodationAvailability{},
		&models.Flight{},
		&models.FlightAvailability{},
		&models.TravelPackage{},
		&models.Booking{},
		&models.ChatSession{},
		&models.ChatMessage{},
		&models.SystemResponse{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"saltbay-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database in the test's temp dir and
// applies the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "saltbay.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RoomCategory{},
		&models.Room{},
		&models.Reservation{},
		&models.BillingRecord{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := models.User{Email: email, Name: "Test User", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return &user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string, price float64) *models.RoomCategory {
	t.Helper()
	category := models.RoomCategory{Name: name, Price: price, Capacity: 2, BedType: "Queen"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category %s: %v", name, err)
	}
	return &category
}

func createTestRooms(t *testing.T, db *gorm.DB, categoryID uint, count int) []models.Room {
	t.Helper()
	rooms := make([]models.Room, 0, count)
	for n := 1; n <= count; n++ {
		room := models.Room{
			Number:         fmt.Sprintf("%d%02d", categoryID, n),
			RoomCategoryID: categoryID,
			Status:         models.RoomAvailable,
			Floor:          "1",
		}
		if err := db.Create(&room).Error; err != nil {
			t.Fatalf("failed to create room %s: %v", room.Number, err)
		}
		rooms = append(rooms, room)
	}
	return rooms
}

// date builds a stay boundary at midnight, the granularity bookings use.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func reloadRoom(t *testing.T, db *gorm.DB, id uint) *models.Room {
	t.Helper()
	var room models.Room
	if err := db.First(&room, id).Error; err != nil {
		t.Fatalf("failed to reload room %d: %v", id, err)
	}
	return &room
}

func reloadReservation(t *testing.T, db *gorm.DB, id uint) *models.Reservation {
	t.Helper()
	var reservation models.Reservation
	if err := db.First(&reservation, id).Error; err != nil {
		t.Fatalf("failed to reload reservation %d: %v", id, err)
	}
	return &reservation
}

package services

import (
	"errors"
	"time"

	"saltbay-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds SELECT ... FOR UPDATE so concurrent allocators cannot
// pick the same row. SQLite has no row locks (the whole database serializes
// on write), so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// resolveCategory loads a room category by id, or by tier name when only a
// room type string was supplied.
func resolveCategory(tx *gorm.DB, categoryID uint, roomType string) (*models.RoomCategory, error) {
	var category models.RoomCategory
	if categoryID != 0 {
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, badRequest("invalid room category")
			}
			return nil, err
		}
		return &category, nil
	}
	if roomType == "" {
		return nil, badRequest("room category is required")
	}
	if err := tx.Where("name = ?", roomType).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, badRequest("invalid room type")
		}
		return nil, err
	}
	return &category, nil
}

// findAvailableRoom returns the first room of the category with no blocking
// reservation overlapping [checkIn, checkOut]. The overlap test is inclusive
// on both ends: boundary-touching stays a conflict so same-day turnover never
// races. First-fit, ordered by room number for determinism. Must run inside
// the caller's transaction; the returned row is locked until commit.
func findAvailableRoom(tx *gorm.DB, categoryID uint, checkIn, checkOut time.Time) (*models.Room, error) {
	overlapping := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Reservation{}).
		Select("1").
		Where("reservations.room_id = rooms.id").
		Where("reservations.status IN ?", models.BlockingStatuses()).
		Where("reservations.check_in_date <= ?", checkOut).
		Where("reservations.check_out_date >= ?", checkIn)

	var room models.Room
	err := lockForUpdate(tx).
		Where("room_category_id = ?", categoryID).
		Where("NOT EXISTS (?)", overlapping).
		Order("number ASC").
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, conflict("no available room of this category for the selected dates")
		}
		return nil, err
	}
	return &room, nil
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomCategory is a room tier (STANDARD, DELUXE, ...) with a nightly rate.
// Capacity, bed type and amenities are descriptive only; allocation never
// reads them.
type RoomCategory struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;size:64" json:"name"`
	Price       float64        `json:"price"`
	Capacity    int            `json:"capacity"`
	BedType     string         `gorm:"size:64" json:"bedType"`
	Description string         `gorm:"type:text" json:"description"`
	Amenities   datatypes.JSON `json:"amenities,omitempty"`

	Rooms []Room `gorm:"foreignKey:RoomCategoryID" json:"rooms,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

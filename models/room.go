package models

import (
	"time"

	"gorm.io/gorm"
)

// Room is a physical room. Status reflects the last committed lifecycle
// transition of the reservation holding it; allocation discipline, not a DB
// constraint, keeps it consistent.
type Room struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Number         string     `gorm:"column:number;uniqueIndex;size:50" json:"number"`
	RoomCategoryID uint       `gorm:"index" json:"roomCategoryId"`
	Status         RoomStatus `gorm:"size:32;default:AVAILABLE" json:"status"`
	Floor          string     `gorm:"size:10" json:"floor,omitempty"`

	RoomCategory RoomCategory `gorm:"foreignKey:RoomCategoryID" json:"roomCategory,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

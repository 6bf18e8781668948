package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation is the unit of booking. RoomID stays nil for group bookings
// until a clerk confirms them; NumberOfRooms is nil for single bookings.
// RoomCategoryID is fixed at creation and reused verbatim when a group
// booking is confirmed.
type Reservation struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	ReferenceCode  string            `gorm:"uniqueIndex;size:64" json:"referenceCode"`
	CustomerID     uint              `gorm:"index" json:"customerId"`
	RoomID         *uint             `gorm:"index" json:"roomId"`
	RoomCategoryID uint              `gorm:"index" json:"roomCategoryId"`
	CheckInDate    time.Time         `json:"checkInDate"`
	CheckOutDate   time.Time         `json:"checkOutDate"`
	Occupants      int               `json:"occupants"`
	NumberOfRooms  *int              `json:"numberOfRooms,omitempty"`
	Status         ReservationStatus `gorm:"size:32;default:PENDING" json:"status"`

	CreditCard       string `gorm:"size:32" json:"-"`
	CreditCardExpiry string `gorm:"size:8" json:"-"`
	CreditCardCVV    string `gorm:"size:8" json:"-"`

	Customer     User         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Room         *Room        `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	RoomCategory RoomCategory `gorm:"foreignKey:RoomCategoryID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsGroup reports whether this is a travel-company group booking.
func (r *Reservation) IsGroup() bool {
	return r.NumberOfRooms != nil && *r.NumberOfRooms > 0
}

// HasPaymentInfo reports whether any payment credential is on file. The
// sweeper only cancels reservations where all three fields are empty.
func (r *Reservation) HasPaymentInfo() bool {
	return r.CreditCard != "" || r.CreditCardExpiry != "" || r.CreditCardCVV != ""
}

// Nights is the billing night count, rounded up so partial days bill whole.
func (r *Reservation) Nights() int {
	d := r.CheckOutDate.Sub(r.CheckInDate)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		nights++
	}
	return nights
}

package models

import "time"

// BillingRecord is written once per reservation and never updated.
type BillingRecord struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ReservationID uint    `gorm:"uniqueIndex" json:"reservationId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `gorm:"size:64" json:"paymentMethod"`

	Reservation Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

package services

import (
	"log"

	"saltbay-backend/models"

	"gorm.io/gorm"
)

// SweeperService cancels stale reservations: PENDING bookings with no
// payment credentials on file. Each record is handled in its own
// transaction so one failure never aborts the rest of the sweep.
type SweeperService struct {
	DB *gorm.DB
}

func NewSweeperService(db *gorm.DB) *SweeperService {
	return &SweeperService{DB: db}
}

// CancelMissingPaymentInfo sweeps once and returns how many reservations
// were cancelled. Best-effort: per-record failures are logged and skipped.
func (s *SweeperService) CancelMissingPaymentInfo() (int, error) {
	var stale []models.Reservation
	err := s.DB.
		Where("status = ?", models.ReservationPending).
		Where("credit_card IS NULL OR credit_card = ''").
		Where("credit_card_expiry IS NULL OR credit_card_expiry = ''").
		Where("credit_card_cvv IS NULL OR credit_card_cvv = ''").
		Find(&stale).Error
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, reservation := range stale {
		swept := false
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			// Re-check under lock; an interactive request may have moved it on.
			var current models.Reservation
			if err := lockForUpdate(tx).First(&current, reservation.ID).Error; err != nil {
				return err
			}
			if current.Status != models.ReservationPending || current.HasPaymentInfo() {
				return nil
			}
			if err := tx.Model(&current).
				Update("status", models.ReservationCancelled).Error; err != nil {
				return err
			}
			if current.RoomID != nil {
				if err := tx.Model(&models.Room{}).
					Where("id = ?", *current.RoomID).
					Update("status", models.RoomAvailable).Error; err != nil {
					return err
				}
			}
			swept = true
			return nil
		})
		if err != nil {
			log.Printf("warning: sweep failed to cancel reservation %d: %v", reservation.ID, err)
			continue
		}
		if swept {
			cancelled++
		}
	}
	return cancelled, nil
}

package services

import (
	"errors"

	"saltbay-backend/models"

	"gorm.io/gorm"
)

// BillingService persists the 1:1 monetary record of a reservation. Records
// are written once and never updated.
type BillingService struct {
	DB *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db}
}

// Create writes a billing record for a reservation. Duplicate records are a
// Conflict; a missing reservation is NotFound.
func (s *BillingService) Create(reservationID uint, amount float64, paymentMethod string) (*models.BillingRecord, error) {
	var record *models.BillingRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		created, err := s.createTx(tx, reservationID, amount, paymentMethod)
		if err != nil {
			return err
		}
		record = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// createTx is the in-transaction variant used by group confirmation so the
// billing write rolls back with the room assignment.
func (s *BillingService) createTx(tx *gorm.DB, reservationID uint, amount float64, paymentMethod string) (*models.BillingRecord, error) {
	var reservation models.Reservation
	if err := tx.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reservation not found")
		}
		return nil, err
	}

	var existing models.BillingRecord
	err := tx.Where("reservation_id = ?", reservationID).First(&existing).Error
	if err == nil {
		return nil, conflict("billing already exists for this reservation")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record := models.BillingRecord{
		ReservationID: reservationID,
		Amount:        amount,
		PaymentMethod: paymentMethod,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *BillingService) GetByID(id uint) (*models.BillingRecord, error) {
	var record models.BillingRecord
	if err := s.DB.Preload("Reservation").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("billing record not found")
		}
		return nil, err
	}
	return &record, nil
}

func (s *BillingService) GetByReservationID(reservationID uint) (*models.BillingRecord, error) {
	var record models.BillingRecord
	err := s.DB.Preload("Reservation").
		Where("reservation_id = ?", reservationID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("billing record not found for this reservation")
		}
		return nil, err
	}
	return &record, nil
}

func (s *BillingService) GetAll() ([]models.BillingRecord, error) {
	var records []models.BillingRecord
	err := s.DB.Preload("Reservation").Order("created_at DESC").Find(&records).Error
	return records, err
}

package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"saltbay-backend/models"
	"saltbay-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationService owns the reservation state machine and the correlated
// room transitions. Every read-check-write sequence runs in one transaction.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type CreateReservationInput struct {
	RoomCategoryID   uint      `json:"roomCategoryId"`
	RoomType         string    `json:"roomType"`
	CheckInDate      time.Time `json:"checkInDate"`
	CheckOutDate     time.Time `json:"checkOutDate"`
	Occupants        int       `json:"occupants"`
	CreditCard       string    `json:"creditCard"`
	CreditCardExpiry string    `json:"creditCardExpiry"`
	CreditCardCVV    string    `json:"creditCardCVV"`
}

type UpdateReservationInput struct {
	CheckInDate  *time.Time                `json:"checkInDate"`
	CheckOutDate *time.Time                `json:"checkOutDate"`
	Occupants    *int                      `json:"occupants"`
	Status       *models.ReservationStatus `json:"status"`
}

type ReservationFilter struct {
	Status         models.ReservationStatus
	RoomCategoryID uint
	CustomerID     uint
}

// Create allocates a room for the stay window and books it as PENDING. The
// room row itself stays AVAILABLE until check-in; the PENDING reservation is
// what the overlap test counts.
func (s *ReservationService) Create(customerID uint, in CreateReservationInput) (*models.Reservation, error) {
	if in.CheckInDate.IsZero() || in.CheckOutDate.IsZero() {
		return nil, badRequest("checkInDate and checkOutDate are required")
	}
	if !in.CheckOutDate.After(in.CheckInDate) {
		return nil, badRequest("checkOutDate must be after the checkInDate")
	}

	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		category, err := resolveCategory(tx, in.RoomCategoryID, in.RoomType)
		if err != nil {
			return err
		}
		room, err := findAvailableRoom(tx, category.ID, in.CheckInDate, in.CheckOutDate)
		if err != nil {
			return err
		}

		reservation = models.Reservation{
			ReferenceCode:    uuid.NewString(),
			CustomerID:       customerID,
			RoomID:           &room.ID,
			RoomCategoryID:   category.ID,
			CheckInDate:      in.CheckInDate,
			CheckOutDate:     in.CheckOutDate,
			Occupants:        in.Occupants,
			Status:           models.ReservationPending,
			CreditCard:       in.CreditCard,
			CreditCardExpiry: in.CreditCardExpiry,
			CreditCardCVV:    in.CreditCardCVV,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyCustomer(customerID, "Reservation Confirmed",
		fmt.Sprintf("Your reservation from %s to %s is confirmed.",
			formatDate(in.CheckInDate), formatDate(in.CheckOutDate)))

	return &reservation, nil
}

// Update applies a patch to a reservation. Setting status to CANCELLED
// releases the bound room back to AVAILABLE in the same transaction.
func (s *ReservationService) Update(id uint, actor Actor, in UpdateReservationInput) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation not found")
			}
			return err
		}
		if err := authorizeReservation(actor, &reservation); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.CheckInDate != nil {
			updates["check_in_date"] = *in.CheckInDate
		}
		if in.CheckOutDate != nil {
			updates["check_out_date"] = *in.CheckOutDate
		}
		if in.Occupants != nil {
			updates["occupants"] = *in.Occupants
		}
		if in.Status != nil {
			if !in.Status.IsValid() {
				return badRequest("invalid reservation status %q", *in.Status)
			}
			updates["status"] = *in.Status

			if *in.Status == models.ReservationCancelled && reservation.RoomID != nil {
				if err := tx.Model(&models.Room{}).
					Where("id = ?", *reservation.RoomID).
					Update("status", models.RoomAvailable).Error; err != nil {
					return err
				}
			}
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&reservation, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Remove hard-deletes a reservation. Only CHECKED_OUT reservations may be
// removed; CANCELLED ones are retained.
func (s *ReservationService) Remove(id uint, actor Actor) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation not found")
			}
			return err
		}
		if err := authorizeReservation(actor, &reservation); err != nil {
			return err
		}
		if reservation.Status != models.ReservationCheckedOut {
			return badRequest("reservation can only be deleted after CHECKED_OUT")
		}
		return tx.Unscoped().Delete(&reservation).Error
	})
}

// Checkout transitions the reservation to CHECKED_OUT and frees the room.
// A billing summary email goes out afterwards when a billing record exists.
func (s *ReservationService) Checkout(id uint, actor Actor) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation not found")
			}
			return err
		}
		if err := authorizeReservation(actor, &reservation); err != nil {
			return err
		}
		if err := tx.Model(&reservation).Update("status", models.ReservationCheckedOut).Error; err != nil {
			return err
		}
		reservation.Status = models.ReservationCheckedOut
		if reservation.RoomID != nil {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *reservation.RoomID).
				Update("status", models.RoomAvailable).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCustomer(reservation.CustomerID, "Check-Out Successful",
		fmt.Sprintf("You have successfully checked out on %s.", formatDate(time.Now())))
	s.sendBillingSummary(&reservation)

	return &reservation, nil
}

// UpdateCheckoutDate changes the check-out date only. The new date must be
// strictly after the check-in date. Availability for the extended window is
// not re-checked.
func (s *ReservationService) UpdateCheckoutDate(id uint, actor Actor, checkOutDate time.Time) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation not found")
			}
			return err
		}
		if err := authorizeReservation(actor, &reservation); err != nil {
			return err
		}
		if checkOutDate.IsZero() {
			return badRequest("invalid checkOutDate")
		}
		if !checkOutDate.After(reservation.CheckInDate) {
			return badRequest("checkOutDate must be after the checkInDate")
		}
		if err := tx.Model(&reservation).Update("check_out_date", checkOutDate).Error; err != nil {
			return err
		}
		reservation.CheckOutDate = checkOutDate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ReservationListItem is the findAll row: the reservation plus the nightly
// rate of its room's category surfaced at the top level.
type ReservationListItem struct {
	models.Reservation
	RoomRate float64 `json:"roomRate,omitempty"`
}

// FindAll is a read-only filtered scan joined with room and category.
func (s *ReservationService) FindAll(filter ReservationFilter) ([]ReservationListItem, error) {
	q := s.DB.Model(&models.Reservation{}).
		Preload("Room.RoomCategory").
		Preload("Customer")
	if filter.Status != "" {
		q = q.Where("reservations.status = ?", filter.Status)
	}
	if filter.RoomCategoryID != 0 {
		q = q.Where("reservations.room_category_id = ?", filter.RoomCategoryID)
	}
	if filter.CustomerID != 0 {
		q = q.Where("reservations.customer_id = ?", filter.CustomerID)
	}

	var reservations []models.Reservation
	if err := q.Order("reservations.created_at DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}

	items := make([]ReservationListItem, 0, len(reservations))
	for _, r := range reservations {
		item := ReservationListItem{Reservation: r}
		if r.Room != nil {
			item.RoomRate = r.Room.RoomCategory.Price
		}
		items = append(items, item)
	}
	return items, nil
}

// FindMine lists a customer's own reservations with their rooms.
func (s *ReservationService) FindMine(customerID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.Preload("Room").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

// notifyCustomer sends a best-effort email to the reservation's customer.
func (s *ReservationService) notifyCustomer(customerID uint, subject, body string) {
	var user models.User
	if err := s.DB.First(&user, customerID).Error; err != nil || user.Email == "" {
		return
	}
	if err := utils.SendMail(user.Email, subject, body); err != nil {
		log.Printf("warning: failed to send %q email to %s: %v", subject, user.Email, err)
	}
}

func (s *ReservationService) sendBillingSummary(reservation *models.Reservation) {
	var billing models.BillingRecord
	if err := s.DB.Where("reservation_id = ?", reservation.ID).First(&billing).Error; err != nil {
		return
	}
	var user models.User
	if err := s.DB.First(&user, reservation.CustomerID).Error; err != nil || user.Email == "" {
		return
	}
	body := fmt.Sprintf(
		"Thank you for staying with us.\n\nReservation ID: %d\nAmount: $%.2f\nPayment Method: %s\nDate: %s",
		reservation.ID, billing.Amount, billing.PaymentMethod, formatDate(billing.CreatedAt))
	if err := utils.SendMail(user.Email, "Your Billing Summary", body); err != nil {
		log.Printf("warning: failed to send billing summary to %s: %v", user.Email, err)
	}
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006 3:04 PM")
}

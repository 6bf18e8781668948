package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"saltbay-backend/models"
	"saltbay-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckInService converges the self, by-email, walk-in and by-id entry
// points onto two outcomes: transition an existing PENDING reservation to
// CHECKED_IN, or allocate a room and create the reservation already
// CHECKED_IN. Either way the room goes OCCUPIED in the same transaction.
type CheckInService struct {
	DB *gorm.DB
}

func NewCheckInService(db *gorm.DB) *CheckInService {
	return &CheckInService{DB: db}
}

type CheckInInput struct {
	RoomID           uint      `json:"roomId"`
	RoomCategoryID   uint      `json:"roomCategoryId"`
	RoomType         string    `json:"roomType"`
	CheckOutDate     time.Time `json:"checkOutDate"`
	Occupants        int       `json:"occupants"`
	CreditCard       string    `json:"creditCard"`
	CreditCardExpiry string    `json:"creditCardExpiry"`
	CreditCardCVV    string    `json:"creditCardCVV"`
}

type EmailCheckInInput struct {
	Email string `json:"email"`
	CheckInInput
}

type ManualCheckInInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	CheckInInput
}

// CheckInResult carries either a mutated reservation or, for the dry-status
// mode, an informational message.
type CheckInResult struct {
	Message     string              `json:"message,omitempty"`
	Reservation *models.Reservation `json:"reservation,omitempty"`
}

// SelfCheckIn checks a customer into their PENDING reservation identified by
// room, or creates a new CHECKED_IN reservation when full details are given.
func (s *CheckInService) SelfCheckIn(customerID uint, in CheckInInput) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var pending models.Reservation
		err := lockForUpdate(tx).
			Where("customer_id = ? AND room_id = ? AND status = ?",
				customerID, in.RoomID, models.ReservationPending).
			First(&pending).Error
		if err == nil {
			reservation = &pending
			return s.completeCheckIn(tx, reservation)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created, err := s.allocateCheckedIn(tx, customerID, in)
		if err != nil {
			return err
		}
		reservation = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCheckIn(customerID)
	return reservation, nil
}

// CheckInByEmail is the clerk-initiated variant. With only an email it is a
// dry status probe: it reports whether a pending reservation exists and
// mutates nothing. With a roomId it behaves like self check-in for the
// resolved user; with full details it creates a CHECKED_IN reservation.
func (s *CheckInService) CheckInByEmail(in EmailCheckInInput) (*CheckInResult, error) {
	user, err := s.findUserByEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if in.RoomID != 0 {
		var result *CheckInResult
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			var pending models.Reservation
			err := lockForUpdate(tx).
				Where("customer_id = ? AND room_id = ? AND status = ?",
					user.ID, in.RoomID, models.ReservationPending).
				First(&pending).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				// No pending reservation on that room; with full details we
				// can still allocate and check in directly.
				if (in.RoomCategoryID != 0 || in.RoomType != "") && !in.CheckOutDate.IsZero() && in.Occupants != 0 {
					created, err := s.allocateCheckedIn(tx, user.ID, in.CheckInInput)
					if err != nil {
						return err
					}
					result = &CheckInResult{Reservation: created}
					return nil
				}
				return notFound("no pending reservation for this room")
			}
			if err := s.completeCheckIn(tx, &pending); err != nil {
				return err
			}
			result = &CheckInResult{Reservation: &pending}
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.notifyCheckIn(user.ID)
		return result, nil
	}

	// Dry status mode: email only, no booking details at all.
	if in.RoomCategoryID == 0 && in.RoomType == "" && in.CheckOutDate.IsZero() && in.Occupants == 0 {
		var pending models.Reservation
		err := s.DB.
			Where("customer_id = ? AND status = ?", user.ID, models.ReservationPending).
			First(&pending).Error
		if err == nil {
			return &CheckInResult{
				Message: "Pending reservation found. Please provide roomId to check in, " +
					"or provide full details to create a new reservation and check in.",
				Reservation: &pending,
			}, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CheckInResult{
				Message: "No pending reservation found. Please provide roomCategoryId, " +
					"checkOutDate and occupants to create a new reservation and check in.",
			}, nil
		}
		return nil, err
	}

	if (in.RoomCategoryID == 0 && in.RoomType == "") || in.CheckOutDate.IsZero() || in.Occupants == 0 {
		return nil, badRequest("missing required fields to create a new reservation: roomCategoryId, checkOutDate, occupants")
	}

	var reservation *models.Reservation
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		created, err := s.allocateCheckedIn(tx, user.ID, in.CheckInInput)
		if err != nil {
			return err
		}
		reservation = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyCheckIn(user.ID)
	return &CheckInResult{Reservation: reservation}, nil
}

// CheckInPendingByEmail checks the customer's first pending reservation in,
// whichever room it holds. Informational result when none exists.
func (s *CheckInService) CheckInPendingByEmail(email string) (*CheckInResult, error) {
	user, err := s.findUserByEmail(email)
	if err != nil {
		return nil, err
	}

	var result *CheckInResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var pending models.Reservation
		err := lockForUpdate(tx).
			Where("customer_id = ? AND status = ?", user.ID, models.ReservationPending).
			Order("id ASC").
			First(&pending).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = &CheckInResult{Message: "No pending reservation found for this customer."}
				return nil
			}
			return err
		}
		if err := s.completeCheckIn(tx, &pending); err != nil {
			return err
		}
		result = &CheckInResult{Reservation: &pending}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Reservation != nil {
		s.notifyCheckIn(user.ID)
	}
	return result, nil
}

// ManualCheckIn is the walk-in flow: the front desk resolves or lazily
// creates the customer account (no password), then allocates a room and
// creates the reservation already CHECKED_IN.
func (s *CheckInService) ManualCheckIn(in ManualCheckInInput) (*models.Reservation, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, badRequest("email is required")
	}
	if (in.RoomCategoryID == 0 && in.RoomType == "") || in.CheckOutDate.IsZero() || in.Occupants == 0 {
		return nil, badRequest("missing required fields: roomCategoryId, checkOutDate, occupants")
	}

	var reservation *models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			name := in.Name
			if name == "" {
				name = strings.SplitN(email, "@", 2)[0]
			}
			user = models.User{
				Email: email,
				Name:  name,
				Role:  models.RoleCustomer,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		created, err := s.allocateCheckedIn(tx, user.ID, in.CheckInInput)
		if err != nil {
			return err
		}
		reservation = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// CheckInByID transitions a specific PENDING reservation to CHECKED_IN.
func (s *CheckInService) CheckInByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation not found")
			}
			return err
		}
		if reservation.Status != models.ReservationPending {
			return badRequest("reservation is already checked in or cancelled")
		}
		return s.completeCheckIn(tx, &reservation)
	})
	if err != nil {
		return nil, err
	}

	s.notifyCheckIn(reservation.CustomerID)
	return &reservation, nil
}

// completeCheckIn transitions a pending reservation to CHECKED_IN, stamps
// the actual check-in time and marks the room OCCUPIED.
func (s *CheckInService) completeCheckIn(tx *gorm.DB, reservation *models.Reservation) error {
	now := time.Now()
	if err := tx.Model(reservation).Updates(map[string]interface{}{
		"status":        models.ReservationCheckedIn,
		"check_in_date": now,
	}).Error; err != nil {
		return err
	}
	reservation.Status = models.ReservationCheckedIn
	reservation.CheckInDate = now

	if reservation.RoomID != nil {
		if err := tx.Model(&models.Room{}).
			Where("id = ?", *reservation.RoomID).
			Update("status", models.RoomOccupied).Error; err != nil {
			return err
		}
	}
	return nil
}

// allocateCheckedIn finds a conflict-free room for [now, checkOutDate] and
// creates the reservation directly in CHECKED_IN with the room OCCUPIED.
func (s *CheckInService) allocateCheckedIn(tx *gorm.DB, customerID uint, in CheckInInput) (*models.Reservation, error) {
	now := time.Now()
	if !in.CheckOutDate.After(now) {
		return nil, badRequest("checkOutDate must be in the future")
	}

	category, err := resolveCategory(tx, in.RoomCategoryID, in.RoomType)
	if err != nil {
		return nil, err
	}
	room, err := findAvailableRoom(tx, category.ID, now, in.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if err := tx.Model(&models.Room{}).
		Where("id = ?", room.ID).
		Update("status", models.RoomOccupied).Error; err != nil {
		return nil, err
	}

	reservation := models.Reservation{
		ReferenceCode:    uuid.NewString(),
		CustomerID:       customerID,
		RoomID:           &room.ID,
		RoomCategoryID:   category.ID,
		CheckInDate:      now,
		CheckOutDate:     in.CheckOutDate,
		Occupants:        in.Occupants,
		Status:           models.ReservationCheckedIn,
		CreditCard:       in.CreditCard,
		CreditCardExpiry: in.CreditCardExpiry,
		CreditCardCVV:    in.CreditCardCVV,
	}
	if err := tx.Create(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *CheckInService) findUserByEmail(email string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, badRequest("email is required")
	}
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("customer not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *CheckInService) notifyCheckIn(customerID uint) {
	var user models.User
	if err := s.DB.First(&user, customerID).Error; err != nil || user.Email == "" {
		return
	}
	body := fmt.Sprintf("You have successfully checked in on %s.", formatDate(time.Now()))
	if err := utils.SendMail(user.Email, "Check-In Successful", body); err != nil {
		log.Printf("warning: failed to send check-in email to %s: %v", user.Email, err)
	}
}

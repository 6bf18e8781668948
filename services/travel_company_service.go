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

// Group bookings carry a fixed 10% discount, billed to the travel company's
// account on confirmation.
const (
	groupDiscountRate  = 0.10
	groupMinimumRooms  = 3
	groupPaymentMethod = "Travel Company Account"
)

var allowedGroupRoomTypes = []string{"STANDARD", "DELUXE", "SUITE"}

// TravelCompanyService runs the group booking flow: submit (PENDING, no room
// bound), confirm (bulk room assignment + discounted billing) and cancel
// (bulk release).
type TravelCompanyService struct {
	DB      *gorm.DB
	Billing *BillingService
}

func NewTravelCompanyService(db *gorm.DB, billing *BillingService) *TravelCompanyService {
	return &TravelCompanyService{DB: db, Billing: billing}
}

type GroupReservationInput struct {
	RoomType      string    `json:"roomType"`
	CheckInDate   time.Time `json:"checkInDate"`
	CheckOutDate  time.Time `json:"checkOutDate"`
	Occupants     int       `json:"occupants"`
	NumberOfRooms int       `json:"numberOfRooms"`
}

type GroupBillingBreakdown struct {
	PricePerNight float64 `json:"pricePerNight"`
	Nights        int     `json:"nights"`
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	FinalAmount   float64 `json:"finalAmount"`
}

type GroupConfirmation struct {
	Message         string                `json:"message"`
	AssignedRoomIDs []uint                `json:"assignedRoomIds"`
	Billing         GroupBillingBreakdown `json:"billing"`
}

// Submit records a group reservation as PENDING with no rooms bound. The
// resolved category is persisted on the reservation and reused verbatim at
// confirmation time.
func (s *TravelCompanyService) Submit(userID uint, in GroupReservationInput) (*models.Reservation, error) {
	roomType := strings.ToUpper(strings.TrimSpace(in.RoomType))
	allowed := false
	for _, t := range allowedGroupRoomTypes {
		if roomType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, badRequest("only STANDARD, DELUXE, SUITE are allowed")
	}
	if in.NumberOfRooms < groupMinimumRooms {
		return nil, badRequest("must reserve at least %d rooms", groupMinimumRooms)
	}
	if in.CheckInDate.IsZero() || in.CheckOutDate.IsZero() {
		return nil, badRequest("checkInDate and checkOutDate are required")
	}
	if !in.CheckOutDate.After(in.CheckInDate) {
		return nil, badRequest("checkOutDate must be after the checkInDate")
	}

	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		category, err := resolveCategory(tx, 0, roomType)
		if err != nil {
			return err
		}
		n := in.NumberOfRooms
		reservation = models.Reservation{
			ReferenceCode:  uuid.NewString(),
			CustomerID:     userID,
			RoomID:         nil, // assigned on confirmation
			RoomCategoryID: category.ID,
			CheckInDate:    in.CheckInDate,
			CheckOutDate:   in.CheckOutDate,
			Occupants:      in.Occupants,
			NumberOfRooms:  &n,
			Status:         models.ReservationPending,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	s.notify(userID, "Travel Company Reservation Submitted", fmt.Sprintf(
		"Your group reservation has been submitted and is awaiting approval from Saltbay.\n\n"+
			"Reservation Details:\nReservation ID: %d\nRoom Type: %s\nNumber of Rooms: %d\n"+
			"Check-In: %s\nCheck-Out: %s\nOccupants per Room: %d\n\n"+
			"You will receive a confirmation once approved by Saltbay.",
		reservation.ID, roomType, in.NumberOfRooms,
		formatDate(in.CheckInDate), formatDate(in.CheckOutDate), in.Occupants))

	return &reservation, nil
}

// Confirm assigns numberOfRooms AVAILABLE rooms of the reservation's
// category, marks them RESERVED, binds the first one and writes the
// discounted billing record. Everything commits or rolls back as one unit.
func (s *TravelCompanyService) Confirm(id uint) (*GroupConfirmation, error) {
	var (
		confirmation GroupConfirmation
		customerID   uint
		reservation  models.Reservation
		roomNumbers  []string
		categoryName string
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation not found")
			}
			return err
		}
		if !reservation.IsGroup() {
			return badRequest("not a group reservation")
		}
		customerID = reservation.CustomerID
		wanted := *reservation.NumberOfRooms

		var category models.RoomCategory
		if err := tx.First(&category, reservation.RoomCategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return badRequest("room category not found")
			}
			return err
		}
		categoryName = category.Name

		var rooms []models.Room
		if err := lockForUpdate(tx).
			Where("room_category_id = ? AND status = ?", category.ID, models.RoomAvailable).
			Order("number ASC").
			Limit(wanted).
			Find(&rooms).Error; err != nil {
			return err
		}
		if len(rooms) < wanted {
			return badRequest("not enough available rooms to confirm this reservation")
		}

		roomIDs := make([]uint, 0, wanted)
		for _, room := range rooms {
			roomIDs = append(roomIDs, room.ID)
			roomNumbers = append(roomNumbers, room.Number)
		}
		if err := tx.Model(&models.Room{}).
			Where("id IN ?", roomIDs).
			Update("status", models.RoomReserved).Error; err != nil {
			return err
		}

		if err := tx.Model(&reservation).Updates(map[string]interface{}{
			"room_id": roomIDs[0],
			"status":  models.ReservationConfirmed,
		}).Error; err != nil {
			return err
		}

		nights := reservation.Nights()
		subtotal := category.Price * float64(nights) * float64(wanted)
		discount := subtotal * groupDiscountRate
		finalAmount := subtotal - discount

		if _, err := s.Billing.createTx(tx, reservation.ID, finalAmount, groupPaymentMethod); err != nil {
			return err
		}

		confirmation = GroupConfirmation{
			Message:         "Travel company reservation confirmed and rooms assigned automatically.",
			AssignedRoomIDs: roomIDs,
			Billing: GroupBillingBreakdown{
				PricePerNight: category.Price,
				Nights:        nights,
				Subtotal:      subtotal,
				Discount:      discount,
				FinalAmount:   finalAmount,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(customerID, "Travel Company Reservation Confirmed by Saltbay", fmt.Sprintf(
		"Your group reservation has been CONFIRMED by Saltbay!\n\n"+
			"Reservation Details:\nReservation ID: %d\nRoom Type: %s\nNumber of Rooms: %d\n"+
			"Check-In: %s\nCheck-Out: %s\nOccupants per Room: %d\nNights: %d\n\n"+
			"Billing Details:\nPrice per Room per Night: $%.2f\nSubtotal: $%.2f\n"+
			"Discount (10%%): -$%.2f\nFinal Amount: $%.2f\n\n"+
			"Assigned Room Numbers: %s\n\nThank you for choosing Saltbay!",
		reservation.ID, categoryName, *reservation.NumberOfRooms,
		formatDate(reservation.CheckInDate), formatDate(reservation.CheckOutDate),
		reservation.Occupants, confirmation.Billing.Nights,
		confirmation.Billing.PricePerNight, confirmation.Billing.Subtotal,
		confirmation.Billing.Discount, confirmation.Billing.FinalAmount,
		strings.Join(roomNumbers, ", ")))

	return &confirmation, nil
}

type GroupCancellation struct {
	Message string `json:"message"`
}

// Cancel releases the reservation's rooms and marks it CANCELLED. A second
// cancel is rejected so rooms are never double-released.
func (s *TravelCompanyService) Cancel(id uint) (*GroupCancellation, error) {
	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation not found")
			}
			return err
		}
		if reservation.Status == models.ReservationCancelled {
			return badRequest("reservation already cancelled")
		}

		if reservation.Status == models.ReservationConfirmed &&
			reservation.NumberOfRooms != nil && *reservation.NumberOfRooms > 1 {
			var rooms []models.Room
			if err := lockForUpdate(tx).
				Where("room_category_id = ? AND status = ?",
					reservation.RoomCategoryID, models.RoomReserved).
				Order("number ASC").
				Limit(*reservation.NumberOfRooms).
				Find(&rooms).Error; err != nil {
				return err
			}
			roomIDs := make([]uint, 0, len(rooms))
			for _, room := range rooms {
				roomIDs = append(roomIDs, room.ID)
			}
			if len(roomIDs) > 0 {
				if err := tx.Model(&models.Room{}).
					Where("id IN ?", roomIDs).
					Update("status", models.RoomAvailable).Error; err != nil {
					return err
				}
			}
		} else if reservation.RoomID != nil {
			if err := tx.Model(&models.Room{}).
				Where("id = ?", *reservation.RoomID).
				Update("status", models.RoomAvailable).Error; err != nil {
				return err
			}
		}

		return tx.Model(&reservation).
			Update("status", models.ReservationCancelled).Error
	})
	if err != nil {
		return nil, err
	}

	numberOfRooms := 0
	if reservation.NumberOfRooms != nil {
		numberOfRooms = *reservation.NumberOfRooms
	}
	s.notify(reservation.CustomerID, "Travel Company Reservation Cancelled", fmt.Sprintf(
		"Your group reservation has been CANCELLED.\n\n"+
			"Reservation Details:\nReservation ID: %d\nNumber of Rooms: %d\n"+
			"Check-In: %s\nCheck-Out: %s\nOccupants per Room: %d\n\n"+
			"If you have any questions or need to make a new reservation, please contact Saltbay.\n\n"+
			"Thank you for your understanding.",
		reservation.ID, numberOfRooms,
		formatDate(reservation.CheckInDate), formatDate(reservation.CheckOutDate),
		reservation.Occupants))

	return &GroupCancellation{Message: "Travel company reservation cancelled."}, nil
}

// List returns all group bookings (reservations with numberOfRooms set).
func (s *TravelCompanyService) List() ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.Preload("Customer").Preload("Room").
		Where("number_of_rooms IS NOT NULL").
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

func (s *TravelCompanyService) notify(userID uint, subject, body string) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil || user.Email == "" {
		return
	}
	if err := utils.SendMail(user.Email, subject, body); err != nil {
		log.Printf("warning: failed to send %q email to %s: %v", subject, user.Email, err)
	}
}

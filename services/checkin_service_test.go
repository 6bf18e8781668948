package services

import (
	"errors"
	"testing"
	"time"

	"saltbay-backend/models"
)

func TestSelfCheckIn_PendingReservation(t *testing.T) {
	db := newTestDB(t)
	reservations := NewReservationService(db)
	checkin := NewCheckInService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	rooms := createTestRooms(t, db, category.ID, 1)

	pending, err := reservations.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    time.Now().Add(time.Hour),
		CheckOutDate:   time.Now().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	checked, err := checkin.SelfCheckIn(customer.ID, CheckInInput{RoomID: rooms[0].ID})
	if err != nil {
		t.Fatalf("SelfCheckIn failed: %v", err)
	}
	if checked.ID != pending.ID {
		t.Errorf("Expected the pending reservation %d, got %d", pending.ID, checked.ID)
	}
	if checked.Status != models.ReservationCheckedIn {
		t.Errorf("Expected status CHECKED_IN, got %s", checked.Status)
	}
	if got := reloadRoom(t, db, rooms[0].ID).Status; got != models.RoomOccupied {
		t.Errorf("Expected room OCCUPIED, got %s", got)
	}
}

func TestSelfCheckIn_AllocatesWhenNoPending(t *testing.T) {
	db := newTestDB(t)
	checkin := NewCheckInService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	rooms := createTestRooms(t, db, category.ID, 1)

	reservation, err := checkin.SelfCheckIn(customer.ID, CheckInInput{
		RoomCategoryID: category.ID,
		CheckOutDate:   time.Now().Add(48 * time.Hour),
		Occupants:      2,
	})
	if err != nil {
		t.Fatalf("SelfCheckIn failed: %v", err)
	}
	if reservation.Status != models.ReservationCheckedIn {
		t.Errorf("Expected status CHECKED_IN, got %s", reservation.Status)
	}
	if reservation.RoomID == nil || *reservation.RoomID != rooms[0].ID {
		t.Errorf("Expected room %d assigned, got %v", rooms[0].ID, reservation.RoomID)
	}
	if got := reloadRoom(t, db, rooms[0].ID).Status; got != models.RoomOccupied {
		t.Errorf("Expected room OCCUPIED, got %s", got)
	}
}

func TestCheckInByEmail_StatusProbe(t *testing.T) {
	db := newTestDB(t)
	reservations := NewReservationService(db)
	checkin := NewCheckInService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	// No reservations yet: informational, nothing mutated.
	result, err := checkin.CheckInByEmail(EmailCheckInInput{Email: "guest@example.com"})
	if err != nil {
		t.Fatalf("CheckInByEmail failed: %v", err)
	}
	if result.Message == "" || result.Reservation != nil {
		t.Errorf("Expected a message-only result, got %+v", result)
	}

	pending, err := reservations.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    time.Now().Add(time.Hour),
		CheckOutDate:   time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err = checkin.CheckInByEmail(EmailCheckInInput{Email: "guest@example.com"})
	if err != nil {
		t.Fatalf("CheckInByEmail failed: %v", err)
	}
	if result.Reservation == nil || result.Reservation.ID != pending.ID {
		t.Fatalf("Expected the pending reservation in the probe result, got %+v", result)
	}
	// Probe must not change anything.
	if got := reloadReservation(t, db, pending.ID).Status; got != models.ReservationPending {
		t.Errorf("Expected reservation still PENDING after probe, got %s", got)
	}
}

func TestCheckInByEmail_UnknownCustomer(t *testing.T) {
	db := newTestDB(t)
	checkin := NewCheckInService(db)

	_, err := checkin.CheckInByEmail(EmailCheckInInput{Email: "nobody@example.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown customer, got %v", err)
	}
}

func TestCheckInByEmail_WithRoom(t *testing.T) {
	db := newTestDB(t)
	reservations := NewReservationService(db)
	checkin := NewCheckInService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	rooms := createTestRooms(t, db, category.ID, 1)

	pending, err := reservations.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    time.Now().Add(time.Hour),
		CheckOutDate:   time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := checkin.CheckInByEmail(EmailCheckInInput{
		Email:        "guest@example.com",
		CheckInInput: CheckInInput{RoomID: rooms[0].ID},
	})
	if err != nil {
		t.Fatalf("CheckInByEmail failed: %v", err)
	}
	if result.Reservation == nil || result.Reservation.ID != pending.ID {
		t.Fatalf("Expected pending reservation checked in, got %+v", result)
	}
	if result.Reservation.Status != models.ReservationCheckedIn {
		t.Errorf("Expected status CHECKED_IN, got %s", result.Reservation.Status)
	}
}

func TestCheckInPendingByEmail(t *testing.T) {
	db := newTestDB(t)
	reservations := NewReservationService(db)
	checkin := NewCheckInService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	result, err := checkin.CheckInPendingByEmail("guest@example.com")
	if err != nil {
		t.Fatalf("CheckInPendingByEmail failed: %v", err)
	}
	if result.Message != "No pending reservation found for this customer." {
		t.Errorf("Unexpected message: %q", result.Message)
	}

	pending, err := reservations.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    time.Now().Add(time.Hour),
		CheckOutDate:   time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err = checkin.CheckInPendingByEmail("guest@example.com")
	if err != nil {
		t.Fatalf("CheckInPendingByEmail failed: %v", err)
	}
	if result.Reservation == nil || result.Reservation.Status != models.ReservationCheckedIn {
		t.Fatalf("Expected reservation CHECKED_IN, got %+v", result)
	}
	if result.Reservation.ID != pending.ID {
		t.Errorf("Expected reservation %d, got %d", pending.ID, result.Reservation.ID)
	}
}

func TestManualCheckIn_CreatesCustomer(t *testing.T) {
	db := newTestDB(t)
	checkin := NewCheckInService(db)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	reservation, err := checkin.ManualCheckIn(ManualCheckInInput{
		Email: "walkin@example.com",
		CheckInInput: CheckInInput{
			RoomCategoryID: category.ID,
			CheckOutDate:   time.Now().Add(48 * time.Hour),
			Occupants:      1,
		},
	})
	if err != nil {
		t.Fatalf("ManualCheckIn failed: %v", err)
	}
	if reservation.Status != models.ReservationCheckedIn {
		t.Errorf("Expected status CHECKED_IN, got %s", reservation.Status)
	}

	var user models.User
	if err := db.Where("email = ?", "walkin@example.com").First(&user).Error; err != nil {
		t.Fatalf("Expected a customer account to be created: %v", err)
	}
	if user.Role != models.RoleCustomer {
		t.Errorf("Expected role CUSTOMER, got %s", user.Role)
	}
	// Name falls back to the email local part.
	if user.Name != "walkin" {
		t.Errorf("Expected name 'walkin', got %q", user.Name)
	}
}

func TestManualCheckIn_RequiresDetails(t *testing.T) {
	db := newTestDB(t)
	checkin := NewCheckInService(db)

	_, err := checkin.ManualCheckIn(ManualCheckInInput{Email: "walkin@example.com"})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("Expected ErrBadRequest without booking details, got %v", err)
	}
}

func TestCheckInByID(t *testing.T) {
	db := newTestDB(t)
	reservations := NewReservationService(db)
	checkin := NewCheckInService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	pending, err := reservations.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    time.Now().Add(time.Hour),
		CheckOutDate:   time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	checked, err := checkin.CheckInByID(pending.ID)
	if err != nil {
		t.Fatalf("CheckInByID failed: %v", err)
	}
	if checked.Status != models.ReservationCheckedIn {
		t.Errorf("Expected status CHECKED_IN, got %s", checked.Status)
	}

	// A second check-in of the same reservation is rejected.
	if _, err := checkin.CheckInByID(pending.ID); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("Expected ErrBadRequest for a repeat check-in, got %v", err)
	}

	if _, err := checkin.CheckInByID(99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for a missing reservation, got %v", err)
	}
}

package services

import (
	"errors"
	"testing"
	"time"

	"saltbay-backend/models"
)

func TestCreateReservation(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	rooms := createTestRooms(t, db, category.ID, 2)

	reservation, err := svc.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
		Occupants:      2,
		CreditCard:     "4111111111111111",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if reservation.Status != models.ReservationPending {
		t.Errorf("Expected status PENDING, got %s", reservation.Status)
	}
	if reservation.ReferenceCode == "" {
		t.Error("Expected a reference code to be assigned")
	}
	if reservation.RoomID == nil || *reservation.RoomID != rooms[0].ID {
		t.Errorf("Expected first room %d to be assigned, got %v", rooms[0].ID, reservation.RoomID)
	}
	// The room row itself stays AVAILABLE until check-in.
	if got := reloadRoom(t, db, rooms[0].ID).Status; got != models.RoomAvailable {
		t.Errorf("Expected room to stay AVAILABLE, got %s", got)
	}
}

func TestCreateReservation_RejectsInvalidDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	// Same-day in and out is a zero-night stay.
	_, err := svc.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 1),
	})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("Expected ErrBadRequest for equal dates, got %v", err)
	}

	_, err = svc.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 3),
		CheckOutDate:   date(2026, time.September, 1),
	})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("Expected ErrBadRequest for inverted dates, got %v", err)
	}
}

func TestCreateReservation_SkipsOverlappingRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	alice := createTestUser(t, db, "alice@example.com", models.RoleCustomer)
	bob := createTestUser(t, db, "bob@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	rooms := createTestRooms(t, db, category.ID, 2)

	first, err := svc.Create(alice.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 5),
	})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := svc.Create(bob.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 3),
		CheckOutDate:   date(2026, time.September, 7),
	})
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	if *first.RoomID != rooms[0].ID {
		t.Errorf("Expected first reservation in room %d, got %d", rooms[0].ID, *first.RoomID)
	}
	if *second.RoomID != rooms[1].ID {
		t.Errorf("Expected overlapping reservation to skip to room %d, got %d", rooms[1].ID, *second.RoomID)
	}
}

func TestCreateReservation_BoundaryDatesConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	alice := createTestUser(t, db, "alice@example.com", models.RoleCustomer)
	bob := createTestUser(t, db, "bob@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	if _, err := svc.Create(alice.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Check-in on the prior stay's check-out day still counts as an overlap.
	_, err := svc.Create(bob.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 3),
		CheckOutDate:   date(2026, time.September, 5),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict for boundary-touching stay, got %v", err)
	}
}

func TestCreateReservation_LastRoomOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	alice := createTestUser(t, db, "alice@example.com", models.RoleCustomer)
	bob := createTestUser(t, db, "bob@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	checkIn := date(2026, time.September, 1)
	checkOut := date(2026, time.September, 3)

	if _, err := svc.Create(alice.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := svc.Create(bob.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict when the last room is taken, got %v", err)
	}
}

func TestUpdateReservation_CancelReleasesRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	rooms := createTestRooms(t, db, category.ID, 1)

	reservation, err := svc.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cancelled := models.ReservationCancelled
	updated, err := svc.Update(reservation.ID, Actor{UserID: customer.ID, Role: models.RoleCustomer},
		UpdateReservationInput{Status: &cancelled})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.ReservationCancelled {
		t.Errorf("Expected status CANCELLED, got %s", updated.Status)
	}
	if got := reloadRoom(t, db, rooms[0].ID).Status; got != models.RoomAvailable {
		t.Errorf("Expected room released to AVAILABLE, got %s", got)
	}

	// The cancelled stay no longer blocks the room.
	other := createTestUser(t, db, "other@example.com", models.RoleCustomer)
	if _, err := svc.Create(other.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
	}); err != nil {
		t.Fatalf("Create after cancel failed: %v", err)
	}
}

func TestUpdateReservation_OwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	alice := createTestUser(t, db, "alice@example.com", models.RoleCustomer)
	bob := createTestUser(t, db, "bob@example.com", models.RoleCustomer)
	clerk := createTestUser(t, db, "clerk@example.com", models.RoleClerk)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	reservation, err := svc.Create(alice.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	occupants := 3
	_, err = svc.Update(reservation.ID, Actor{UserID: bob.ID, Role: models.RoleCustomer},
		UpdateReservationInput{Occupants: &occupants})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for another customer, got %v", err)
	}

	// Staff are unrestricted.
	if _, err := svc.Update(reservation.ID, Actor{UserID: clerk.ID, Role: models.RoleClerk},
		UpdateReservationInput{Occupants: &occupants}); err != nil {
		t.Fatalf("clerk Update failed: %v", err)
	}
}

func TestRemoveReservation_RequiresCheckedOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	reservation, err := svc.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	actor := Actor{UserID: customer.ID, Role: models.RoleCustomer}

	if err := svc.Remove(reservation.ID, actor); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("Expected ErrBadRequest removing a PENDING reservation, got %v", err)
	}

	if _, err := svc.Checkout(reservation.ID, actor); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if err := svc.Remove(reservation.ID, actor); err != nil {
		t.Fatalf("Remove after checkout failed: %v", err)
	}

	var count int64
	db.Unscoped().Model(&models.Reservation{}).Where("id = ?", reservation.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected reservation row to be gone, found %d", count)
	}
}

func TestCheckout_FreesRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	rooms := createTestRooms(t, db, category.ID, 1)

	reservation, err := svc.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	db.Model(&models.Room{}).Where("id = ?", rooms[0].ID).Update("status", models.RoomOccupied)

	checkedOut, err := svc.Checkout(reservation.ID, Actor{UserID: customer.ID, Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if checkedOut.Status != models.ReservationCheckedOut {
		t.Errorf("Expected status CHECKED_OUT, got %s", checkedOut.Status)
	}
	if got := reloadRoom(t, db, rooms[0].ID).Status; got != models.RoomAvailable {
		t.Errorf("Expected room AVAILABLE after checkout, got %s", got)
	}
}

func TestUpdateCheckoutDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	category := createTestCategory(t, db, "STANDARD", 120)
	createTestRooms(t, db, category.ID, 1)

	reservation, err := svc.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: category.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	actor := Actor{UserID: customer.ID, Role: models.RoleCustomer}

	extended := date(2026, time.September, 6)
	updated, err := svc.UpdateCheckoutDate(reservation.ID, actor, extended)
	if err != nil {
		t.Fatalf("UpdateCheckoutDate failed: %v", err)
	}
	if !updated.CheckOutDate.Equal(extended) {
		t.Errorf("Expected check-out %v, got %v", extended, updated.CheckOutDate)
	}

	_, err = svc.UpdateCheckoutDate(reservation.ID, actor, date(2026, time.August, 30))
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("Expected ErrBadRequest for date before check-in, got %v", err)
	}
}

func TestFindAll_FiltersAndRoomRate(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)
	customer := createTestUser(t, db, "guest@example.com", models.RoleCustomer)
	standard := createTestCategory(t, db, "STANDARD", 120)
	deluxe := createTestCategory(t, db, "DELUXE", 180)
	createTestRooms(t, db, standard.ID, 1)
	createTestRooms(t, db, deluxe.ID, 1)

	if _, err := svc.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: standard.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(customer.ID, CreateReservationInput{
		RoomCategoryID: deluxe.ID,
		CheckInDate:    date(2026, time.September, 1),
		CheckOutDate:   date(2026, time.September, 3),
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	items, err := svc.FindAll(ReservationFilter{RoomCategoryID: deluxe.ID})
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 reservation, got %d", len(items))
	}
	if items[0].RoomRate != 180 {
		t.Errorf("Expected roomRate 180, got %v", items[0].RoomRate)
	}
}

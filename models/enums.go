package models

// Role of a user account.
type Role string

const (
	RoleCustomer      Role = "CUSTOMER"
	RoleClerk         Role = "CLERK"
	RoleManager       Role = "MANAGER"
	RoleTravelCompany Role = "TRAVEL_COMPANY"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleClerk, RoleManager, RoleTravelCompany:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role may operate on reservations it does not own.
func (r Role) IsStaff() bool {
	return r == RoleClerk || r == RoleManager
}

// RoomStatus of a physical room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomReserved    RoomStatus = "RESERVED"
)

func (s RoomStatus) String() string {
	return string(s)
}

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomReserved:
		return true
	default:
		return false
	}
}

// ReservationStatus drives the reservation state machine.
type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "PENDING"
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationCancelled  ReservationStatus = "CANCELLED"
)

func (s ReservationStatus) String() string {
	return string(s)
}

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCheckedIn,
		ReservationCheckedOut, ReservationCancelled:
		return true
	default:
		return false
	}
}

// Blocking reports whether a reservation in this status keeps its room out of
// the availability pool for overlapping dates.
func (s ReservationStatus) Blocking() bool {
	return s == ReservationPending || s == ReservationConfirmed || s == ReservationCheckedIn
}

// BlockingStatuses lists the statuses the overlap test counts as conflicting.
func BlockingStatuses() []ReservationStatus {
	return []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationCheckedIn}
}

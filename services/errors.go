package services

import (
	"errors"
	"fmt"

	"saltbay-backend/models"
)

// Error kinds surfaced to the HTTP layer. Services wrap these with a
// human-readable message; controllers map them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

func notFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func forbidden(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func unauthorized(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	UserID uint
	Role   models.Role
}

// authorizeReservation enforces the ownership rule: customers and travel
// companies may only touch their own reservations, clerks and managers are
// unrestricted.
func authorizeReservation(actor Actor, reservation *models.Reservation) error {
	if actor.Role.IsStaff() {
		return nil
	}
	if reservation.CustomerID != actor.UserID {
		return forbidden("not your reservation")
	}
	return nil
}

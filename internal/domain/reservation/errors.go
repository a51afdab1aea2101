package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceInactive    = errors.New("resource is not available for booking")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationConflict = errors.New("reservation overlaps an existing booking")
	ErrFixedNotCancelable  = errors.New("recurring fixed bookings cannot be cancelled")
	ErrNotRequester        = errors.New("only the requester can change this reservation")
	ErrAlreadyCancelled    = errors.New("reservation already cancelled")
	ErrNotVehicle          = errors.New("reservation is not a vehicle booking")
	ErrInvalidVehicleState = errors.New("vehicle reservation is not in the required state")
	ErrInvalidMileage      = errors.New("end mileage must not be lower than start mileage")
)

// ConflictError carries the booking that blocks a new reservation. With is
// empty when the database constraint caught the conflict.
type ConflictError struct {
	With BookingInterval
}

func (e *ConflictError) Error() string {
	if e.With.ID == "" {
		return ErrReservationConflict.Error()
	}
	return fmt.Sprintf("%s: %s %s~%s", ErrReservationConflict, e.With.Label,
		e.With.Start.Format("15:04"), e.With.End.Format("15:04"))
}

func (e *ConflictError) Unwrap() error {
	return ErrReservationConflict
}

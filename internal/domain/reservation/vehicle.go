package reservation

import "time"

// CheckoutRecord is submitted when a vehicle is picked up.
type CheckoutRecord struct {
	Mileage int
	Photo   string
}

// ReturnRecord is submitted when a vehicle is brought back.
type ReturnRecord struct {
	Mileage         int
	Photo           string
	IsClean         bool
	ParkingLocation string
	ConditionNote   string
}

// StartUse moves a reserved vehicle booking to in-use. Mileage readings are not
// compared here; callers validate them.
func (r *Reservation) StartUse(callerID string, rec CheckoutRecord, at time.Time) error {
	if err := r.checkVehicleTransition(callerID, VehicleReserved); err != nil {
		return err
	}

	state := VehicleInUse
	r.VehicleState = &state
	r.StartMileage = &rec.Mileage
	r.StartPhoto = &rec.Photo
	r.StartedAt = &at
	return nil
}

// Return completes the checkout. The caller also writes rec.Mileage to the resource.
func (r *Reservation) Return(callerID string, rec ReturnRecord, at time.Time) error {
	if err := r.checkVehicleTransition(callerID, VehicleInUse); err != nil {
		return err
	}

	state := VehicleReturned
	r.VehicleState = &state
	r.EndMileage = &rec.Mileage
	r.EndPhoto = &rec.Photo
	r.IsClean = &rec.IsClean
	r.ParkingLocation = &rec.ParkingLocation
	r.ConditionNote = &rec.ConditionNote
	r.ReturnedAt = &at
	return nil
}

// Cancel releases the slot. Vehicles can only be cancelled before pickup.
func (r *Reservation) Cancel(callerID string, at time.Time) error {
	if r.RequesterID != callerID {
		return ErrNotRequester
	}
	if !r.IsActive() {
		return ErrAlreadyCancelled
	}
	if r.VehicleState != nil && *r.VehicleState != VehicleReserved {
		return ErrInvalidVehicleState
	}

	r.Status = StatusCancelled
	r.CancelledAt = &at
	return nil
}

func (r *Reservation) checkVehicleTransition(callerID string, from VehicleState) error {
	if r.VehicleState == nil {
		return ErrNotVehicle
	}
	if r.RequesterID != callerID {
		return ErrNotRequester
	}
	if !r.IsActive() || *r.VehicleState != from {
		return ErrInvalidVehicleState
	}
	return nil
}

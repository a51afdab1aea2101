package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vehicleReservation() Reservation {
	state := VehicleReserved
	return Reservation{
		ID:           "r1",
		ResourceID:   "van",
		RequesterID:  "u1",
		StartAt:      at(9, 0),
		EndAt:        at(12, 0),
		Status:       StatusActive,
		VehicleState: &state,
	}
}

func TestReservation_VehicleLifecycle(t *testing.T) {
	r := vehicleReservation()

	require.NoError(t, r.StartUse("u1", CheckoutRecord{Mileage: 10500, Photo: "vehicles/r1/start.jpg"}, at(9, 5)))
	assert.Equal(t, VehicleInUse, *r.VehicleState)
	assert.Equal(t, 10500, *r.StartMileage)
	assert.Equal(t, at(9, 5), *r.StartedAt)

	err := r.StartUse("u1", CheckoutRecord{Mileage: 10500, Photo: "again.jpg"}, at(9, 6))
	assert.ErrorIs(t, err, ErrInvalidVehicleState)

	require.NoError(t, r.Return("u1", ReturnRecord{
		Mileage: 10620, Photo: "vehicles/r1/end.jpg", IsClean: true,
		ParkingLocation: "교육관 지하 B2", ConditionNote: "이상 없음",
	}, at(12, 10)))
	assert.Equal(t, VehicleReturned, *r.VehicleState)
	assert.Equal(t, 10620, *r.EndMileage)
	assert.True(t, *r.IsClean)
	assert.Equal(t, "교육관 지하 B2", *r.ParkingLocation)

	err = r.Return("u1", ReturnRecord{Mileage: 10700}, at(12, 20))
	assert.ErrorIs(t, err, ErrInvalidVehicleState)
}

func TestReservation_ReturnDoesNotCompareMileage(t *testing.T) {
	r := vehicleReservation()
	require.NoError(t, r.StartUse("u1", CheckoutRecord{Mileage: 10500, Photo: "p"}, at(9, 0)))
	assert.NoError(t, r.Return("u1", ReturnRecord{Mileage: 100, Photo: "p", ParkingLocation: "x"}, at(10, 0)))
}

func TestReservation_VehicleGuards(t *testing.T) {
	r := vehicleReservation()
	assert.ErrorIs(t, r.StartUse("u2", CheckoutRecord{}, at(9, 0)), ErrNotRequester)
	assert.ErrorIs(t, r.Return("u1", ReturnRecord{}, at(9, 0)), ErrInvalidVehicleState)

	room := Reservation{RequesterID: "u1", Status: StatusActive}
	assert.ErrorIs(t, room.StartUse("u1", CheckoutRecord{}, at(9, 0)), ErrNotVehicle)

	r.Status = StatusCancelled
	assert.ErrorIs(t, r.StartUse("u1", CheckoutRecord{}, at(9, 0)), ErrInvalidVehicleState)
}

func TestReservation_Cancel(t *testing.T) {
	room := Reservation{RequesterID: "u1", Status: StatusActive}
	assert.ErrorIs(t, room.Cancel("u2", at(8, 0)), ErrNotRequester)
	require.NoError(t, room.Cancel("u1", at(8, 0)))
	assert.Equal(t, StatusCancelled, room.Status)
	assert.ErrorIs(t, room.Cancel("u1", at(8, 0)), ErrAlreadyCancelled)

	van := vehicleReservation()
	require.NoError(t, van.StartUse("u1", CheckoutRecord{Mileage: 1, Photo: "p"}, at(9, 0)))
	assert.ErrorIs(t, van.Cancel("u1", at(9, 1)), ErrInvalidVehicleState)
}

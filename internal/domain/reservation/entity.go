package reservation

import "time"

type Category string

const (
	CategoryRoom    Category = "room"
	CategoryVehicle Category = "vehicle"
)

func (c Category) Valid() bool {
	return c == CategoryRoom || c == CategoryVehicle
}

// Resource is a bookable room or vehicle.
type Resource struct {
	ID       string
	Name     string
	Category Category
	IsActive bool
	Color    string
	Mileage  *int // vehicles only, cumulative odometer reading

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Resource) IsVehicle() bool {
	return r.Category == CategoryVehicle
}

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

type VehicleState string

const (
	VehicleReserved VehicleState = "reserved"
	VehicleInUse    VehicleState = "in_use"
	VehicleReturned VehicleState = "returned"
)

// Reservation entity
type Reservation struct {
	ID          string
	ResourceID  string
	RequesterID string
	StartAt     time.Time
	EndAt       time.Time
	Purpose     string
	Status      Status
	CancelledAt *time.Time

	// Vehicle checkout, nil for rooms
	VehicleState    *VehicleState
	StartMileage    *int
	EndMileage      *int
	StartPhoto      *string
	EndPhoto        *string
	IsClean         *bool
	ParkingLocation *string
	ConditionNote   *string
	StartedAt       *time.Time
	ReturnedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	RequesterName *string
	ResourceName  *string
}

func (r Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// Interval converts a stored reservation into its timeline form.
func (r Reservation) Interval() BookingInterval {
	label := r.Purpose
	if r.RequesterName != nil && *r.RequesterName != "" {
		label = *r.RequesterName + " · " + r.Purpose
	}
	return BookingInterval{
		Kind:         KindPersisted,
		ID:           r.ID,
		ResourceID:   r.ResourceID,
		Start:        r.StartAt,
		End:          r.EndAt,
		Label:        label,
		Status:       r.Status,
		RequesterID:  r.RequesterID,
		VehicleState: r.VehicleState,
	}
}

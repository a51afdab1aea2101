package reservation

import (
	"io"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/pkg/validator"
)

type CreateResourceRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"required,oneof=room vehicle"`
	Color    string `json:"color" validate:"omitempty,hexcolor6"`
	Mileage  *int   `json:"mileage" validate:"omitempty,gte=0"`
}

func (r *CreateResourceRequest) Validate() error {
	errs := validator.Struct(r)
	if len(errs) == 0 && validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if r.Mileage != nil && r.Category != string(CategoryVehicle) {
		errs.Add("mileage", "mileage is only tracked for vehicles")
	}
	return errs.OrNil()
}

type CreateReservationRequest struct {
	RequesterID string    `json:"-"`
	ResourceID  string    `json:"resource_id" validate:"required"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" validate:"required"`
	Purpose     string    `json:"purpose" validate:"required,max=200"`
}

func (r *CreateReservationRequest) Validate() error {
	errs := validator.Struct(r)
	if len(errs) > 0 {
		return errs
	}
	if validator.IsEmpty(r.Purpose) {
		errs.Add("purpose", "purpose is required")
	}
	if !r.EndAt.After(r.StartAt) {
		errs.Add("end_at", "end_at must be after start_at")
	}
	return errs.OrNil()
}

type TimelineRequest struct {
	Date     string
	Category string
}

func (r *TimelineRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if r.Category != "" && !Category(r.Category).Valid() {
		errs.Add("category", "category must be one of: room vehicle")
	}
	return errs.OrNil()
}

// SelectRangeRequest carries raw pointer coordinates from a timeline row.
type SelectRangeRequest struct {
	ResourceID string  `json:"resource_id" validate:"required"`
	Date       string  `json:"date" validate:"required"`
	XStart     float64 `json:"x_start" validate:"gte=0"`
	XEnd       float64 `json:"x_end" validate:"gte=0"`
	Width      float64 `json:"width" validate:"gt=0"`
}

func (r *SelectRangeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	return errs.OrNil()
}

type StartVehicleUseRequest struct {
	ReservationID string
	CallerID      string
	Mileage       int
	Photo         io.Reader
	PhotoName     string
}

func (r *StartVehicleUseRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Mileage < 0 {
		errs.Add("mileage", "mileage must not be negative")
	}
	if r.Photo == nil || validator.IsEmpty(r.PhotoName) {
		errs.Add("photo", "photo is required")
	}
	return errs.OrNil()
}

type ReturnVehicleRequest struct {
	ReservationID   string
	CallerID        string
	Mileage         int
	IsClean         bool
	ParkingLocation string
	ConditionNote   string
	Photo           io.Reader
	PhotoName       string
}

func (r *ReturnVehicleRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Mileage < 0 {
		errs.Add("mileage", "mileage must not be negative")
	}
	if validator.IsEmpty(r.ParkingLocation) {
		errs.Add("parking_location", "parking_location is required")
	}
	if len(r.ParkingLocation) > 200 {
		errs.Add("parking_location", "parking_location must not exceed 200 characters")
	}
	if len(r.ConditionNote) > 1000 {
		errs.Add("condition_note", "condition_note must not exceed 1000 characters")
	}
	if r.Photo == nil || validator.IsEmpty(r.PhotoName) {
		errs.Add("photo", "photo is required")
	}
	return errs.OrNil()
}

type ResourceResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	IsActive bool     `json:"is_active"`
	Color    string   `json:"color,omitempty"`
	Mileage  *int     `json:"mileage,omitempty"`
}

func NewResourceResponse(r Resource) ResourceResponse {
	return ResourceResponse{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		IsActive: r.IsActive,
		Color:    r.Color,
		Mileage:  r.Mileage,
	}
}

type ReservationResponse struct {
	ID              string        `json:"id"`
	ResourceID      string        `json:"resource_id"`
	ResourceName    *string       `json:"resource_name,omitempty"`
	RequesterID     string        `json:"requester_id"`
	RequesterName   *string       `json:"requester_name,omitempty"`
	StartAt         time.Time     `json:"start_at"`
	EndAt           time.Time     `json:"end_at"`
	Purpose         string        `json:"purpose"`
	Status          Status        `json:"status"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
	VehicleState    *VehicleState `json:"vehicle_state,omitempty"`
	StartMileage    *int          `json:"start_mileage,omitempty"`
	EndMileage      *int          `json:"end_mileage,omitempty"`
	StartPhotoURL   *string       `json:"start_photo_url,omitempty"`
	EndPhotoURL     *string       `json:"end_photo_url,omitempty"`
	IsClean         *bool         `json:"is_clean,omitempty"`
	ParkingLocation *string       `json:"parking_location,omitempty"`
	ConditionNote   *string       `json:"condition_note,omitempty"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	ReturnedAt      *time.Time    `json:"returned_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// NewReservationResponse builds a response; photoURL resolves stored photo keys.
func NewReservationResponse(r Reservation, photoURL func(key string) string) ReservationResponse {
	resp := ReservationResponse{
		ID:              r.ID,
		ResourceID:      r.ResourceID,
		ResourceName:    r.ResourceName,
		RequesterID:     r.RequesterID,
		RequesterName:   r.RequesterName,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		Purpose:         r.Purpose,
		Status:          r.Status,
		CancelledAt:     r.CancelledAt,
		VehicleState:    r.VehicleState,
		StartMileage:    r.StartMileage,
		EndMileage:      r.EndMileage,
		IsClean:         r.IsClean,
		ParkingLocation: r.ParkingLocation,
		ConditionNote:   r.ConditionNote,
		StartedAt:       r.StartedAt,
		ReturnedAt:      r.ReturnedAt,
		CreatedAt:       r.CreatedAt,
	}
	if r.StartPhoto != nil && photoURL != nil {
		u := photoURL(*r.StartPhoto)
		resp.StartPhotoURL = &u
	}
	if r.EndPhoto != nil && photoURL != nil {
		u := photoURL(*r.EndPhoto)
		resp.EndPhotoURL = &u
	}
	return resp
}

type IntervalResponse struct {
	Kind         IntervalKind  `json:"kind"`
	ID           string        `json:"id"`
	ResourceID   string        `json:"resource_id"`
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	Label        string        `json:"label"`
	RequesterID  string        `json:"requester_id,omitempty"`
	VehicleState *VehicleState `json:"vehicle_state,omitempty"`
}

func NewIntervalResponse(b BookingInterval) IntervalResponse {
	return IntervalResponse{
		Kind:         b.Kind,
		ID:           b.ID,
		ResourceID:   b.ResourceID,
		Start:        b.Start,
		End:          b.End,
		Label:        b.Label,
		RequesterID:  b.RequesterID,
		VehicleState: b.VehicleState,
	}
}

type BarResponse struct {
	Interval     IntervalResponse `json:"interval"`
	LeftPercent  float64          `json:"left_percent"`
	WidthPercent float64          `json:"width_percent"`
	Cancelable   bool             `json:"cancelable"`
}

type ResourceTimelineResponse struct {
	Resource ResourceResponse `json:"resource"`
	Bars     []BarResponse    `json:"bars"`
}

type DayTimelineResponse struct {
	Date         string                     `json:"date"`
	WindowStart  time.Time                  `json:"window_start"`
	WindowEnd    time.Time                  `json:"window_end"`
	TotalMinutes int                        `json:"total_minutes"`
	Resources    []ResourceTimelineResponse `json:"resources"`
}

type SelectionResponse struct {
	ResourceID   string            `json:"resource_id"`
	Start        time.Time         `json:"start"`
	End          time.Time         `json:"end"`
	IsClick      bool              `json:"is_click"`
	Conflict     bool              `json:"conflict"`
	ConflictWith *IntervalResponse `json:"conflict_with,omitempty"`
}

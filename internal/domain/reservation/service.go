package reservation

import "context"

type ReservationService interface {
	// Resources
	ListResources(ctx context.Context, category string) ([]ResourceResponse, error)
	CreateResource(ctx context.Context, req CreateResourceRequest) (ResourceResponse, error)
	// Timeline
	DayTimeline(ctx context.Context, req TimelineRequest, callerID string) (DayTimelineResponse, error)
	SelectRange(ctx context.Context, req SelectRangeRequest) (SelectionResponse, error)
	// Reservations
	CreateReservation(ctx context.Context, req CreateReservationRequest) (ReservationResponse, error)
	GetReservation(ctx context.Context, reservationID string) (ReservationResponse, error)
	CancelReservation(ctx context.Context, reservationID, callerID string) (ReservationResponse, error)
	// Vehicle checkout
	StartVehicleUse(ctx context.Context, req StartVehicleUseRequest) (ReservationResponse, error)
	ReturnVehicle(ctx context.Context, req ReturnVehicleRequest) (ReservationResponse, error)
}

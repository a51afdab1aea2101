package reservation

import (
	"context"
	"time"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource Resource) (Resource, error)
	GetByID(ctx context.Context, id string) (Resource, error)
	// List returns resources of category, or all when category is empty.
	List(ctx context.Context, category Category, activeOnly bool) ([]Resource, error)
	UpdateMileage(ctx context.Context, id string, mileage int) error
}

// ReservationFilter selects active reservations intersecting [From, To).
type ReservationFilter struct {
	ResourceIDs []string
	From        time.Time
	To          time.Time
}

type ReservationRepository interface {
	// Create returns ErrReservationConflict when the store rejects an overlapping row.
	Create(ctx context.Context, reservation Reservation) (Reservation, error)
	GetByID(ctx context.Context, id string) (Reservation, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (Reservation, error)
	ListActive(ctx context.Context, filter ReservationFilter) ([]Reservation, error)
	Update(ctx context.Context, reservation Reservation) (Reservation, error)
}

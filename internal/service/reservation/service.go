package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/database"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/validator"
	"github.com/sarang-church/groupware-backend-go/internal/service/file"
)

// Options configures the timeline window and recurring blocks.
type Options struct {
	StartHour   int
	EndHour     int
	Location    *time.Location
	FixedBlocks []reservation.FixedBlock
}

type ReservationServiceImpl struct {
	database.Transactor
	reservation.ResourceRepository
	reservation.ReservationRepository
	fileService file.FileService
	opts        Options
	now         func() time.Time
}

func NewReservationService(tx database.Transactor, resourceRepository reservation.ResourceRepository, reservationRepository reservation.ReservationRepository, fileService file.FileService, opts Options) reservation.ReservationService {
	if opts.StartHour == 0 && opts.EndHour == 0 {
		opts.StartHour, opts.EndHour = reservation.DefaultStartHour, reservation.DefaultEndHour
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &ReservationServiceImpl{
		Transactor:            tx,
		ResourceRepository:    resourceRepository,
		ReservationRepository: reservationRepository,
		fileService:           fileService,
		opts:                  opts,
		now:                   time.Now,
	}
}

// ListResources implements reservation.ReservationService.
func (s *ReservationServiceImpl) ListResources(ctx context.Context, category string) ([]reservation.ResourceResponse, error) {
	if category != "" && !reservation.Category(category).Valid() {
		return nil, validator.ValidationErrors{{Field: "category", Message: "category must be one of: room vehicle"}}
	}

	resources, err := s.ResourceRepository.List(ctx, reservation.Category(category), true)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	out := make([]reservation.ResourceResponse, 0, len(resources))
	for _, r := range resources {
		out = append(out, reservation.NewResourceResponse(r))
	}
	return out, nil
}

// CreateResource implements reservation.ReservationService.
func (s *ReservationServiceImpl) CreateResource(ctx context.Context, req reservation.CreateResourceRequest) (reservation.ResourceResponse, error) {
	if err := req.Validate(); err != nil {
		return reservation.ResourceResponse{}, err
	}

	resource := reservation.Resource{
		Name:     req.Name,
		Category: reservation.Category(req.Category),
		IsActive: true,
		Color:    req.Color,
		Mileage:  req.Mileage,
	}
	if resource.Color == "" {
		resource.Color = defaultColor(resource.Category)
	}
	if resource.IsVehicle() && resource.Mileage == nil {
		zero := 0
		resource.Mileage = &zero
	}

	created, err := s.ResourceRepository.Create(ctx, resource)
	if err != nil {
		return reservation.ResourceResponse{}, fmt.Errorf("failed to create resource: %w", err)
	}
	return reservation.NewResourceResponse(created), nil
}

// GetReservation implements reservation.ReservationService.
func (s *ReservationServiceImpl) GetReservation(ctx context.Context, reservationID string) (reservation.ReservationResponse, error) {
	r, err := s.ReservationRepository.GetByID(ctx, reservationID)
	if err != nil {
		return reservation.ReservationResponse{}, fmt.Errorf("failed to get reservation: %w", err)
	}
	return s.toResponse(ctx, r), nil
}

// CreateReservation implements reservation.ReservationService.
func (s *ReservationServiceImpl) CreateReservation(ctx context.Context, req reservation.CreateReservationRequest) (reservation.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return reservation.ReservationResponse{}, err
	}

	resource, err := s.ResourceRepository.GetByID(ctx, req.ResourceID)
	if err != nil {
		return reservation.ReservationResponse{}, fmt.Errorf("failed to get resource: %w", err)
	}
	if !resource.IsActive {
		return reservation.ReservationResponse{}, reservation.ErrResourceInactive
	}

	var created reservation.Reservation
	err = s.WithinTransaction(ctx, func(txCtx context.Context) error {
		conflict, found, err := s.findConflict(txCtx, resource.ID, req.StartAt, req.EndAt)
		if err != nil {
			return err
		}
		if found {
			return &reservation.ConflictError{With: conflict}
		}

		r := reservation.Reservation{
			ResourceID:  resource.ID,
			RequesterID: req.RequesterID,
			StartAt:     req.StartAt,
			EndAt:       req.EndAt,
			Purpose:     req.Purpose,
			Status:      reservation.StatusActive,
		}
		if resource.IsVehicle() {
			state := reservation.VehicleReserved
			r.VehicleState = &state
		}

		created, err = s.ReservationRepository.Create(txCtx, r)
		if err != nil {
			// The exclusion constraint caught a booking committed after our check
			if errors.Is(err, reservation.ErrReservationConflict) {
				return &reservation.ConflictError{}
			}
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return reservation.ReservationResponse{}, err
	}

	created.ResourceName = &resource.Name
	return s.toResponse(ctx, created), nil
}

// CancelReservation implements reservation.ReservationService.
func (s *ReservationServiceImpl) CancelReservation(ctx context.Context, reservationID, callerID string) (reservation.ReservationResponse, error) {
	if reservation.IsFixedID(reservationID) {
		return reservation.ReservationResponse{}, reservation.ErrFixedNotCancelable
	}

	var updated reservation.Reservation
	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		r, err := s.ReservationRepository.GetForUpdate(txCtx, reservationID)
		if err != nil {
			return fmt.Errorf("failed to get reservation: %w", err)
		}
		if err := r.Cancel(callerID, s.now()); err != nil {
			return err
		}

		updated, err = s.ReservationRepository.Update(txCtx, r)
		if err != nil {
			return fmt.Errorf("failed to cancel reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return reservation.ReservationResponse{}, err
	}

	return s.toResponse(ctx, updated), nil
}

// findConflict checks [start, end) against active reservations and the fixed
// blocks of every day the range touches.
func (s *ReservationServiceImpl) findConflict(ctx context.Context, resourceID string, start, end time.Time) (reservation.BookingInterval, bool, error) {
	existing, err := s.ReservationRepository.ListActive(ctx, reservation.ReservationFilter{
		ResourceIDs: []string{resourceID},
		From:        start,
		To:          end,
	})
	if err != nil {
		return reservation.BookingInterval{}, false, fmt.Errorf("failed to list reservations: %w", err)
	}

	intervals := make([]reservation.BookingInterval, 0, len(existing))
	for _, r := range existing {
		intervals = append(intervals, r.Interval())
	}
	intervals = append(intervals, reservation.ExpandFixed(s.opts.FixedBlocks, start.In(s.opts.Location), end.In(s.opts.Location))...)

	conflict, found := reservation.DetectOverlap(resourceID, start, end, intervals)
	return conflict, found, nil
}

func (s *ReservationServiceImpl) toResponse(ctx context.Context, r reservation.Reservation) reservation.ReservationResponse {
	return reservation.NewReservationResponse(r, func(key string) string {
		url, err := s.fileService.GetFileURL(ctx, key, time.Hour)
		if err != nil {
			return ""
		}
		return url
	})
}

func defaultColor(c reservation.Category) string {
	if c == reservation.CategoryVehicle {
		return "#0EA5E9"
	}
	return "#6366F1"
}

package reservation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
)

// StartVehicleUse implements reservation.ReservationService.
func (s *ReservationServiceImpl) StartVehicleUse(ctx context.Context, req reservation.StartVehicleUseRequest) (reservation.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return reservation.ReservationResponse{}, err
	}

	// Check the transition before storing a photo for it
	current, err := s.ReservationRepository.GetByID(ctx, req.ReservationID)
	if err != nil {
		return reservation.ReservationResponse{}, fmt.Errorf("failed to get reservation: %w", err)
	}
	if err := current.StartUse(req.CallerID, reservation.CheckoutRecord{Mileage: req.Mileage}, s.now()); err != nil {
		return reservation.ReservationResponse{}, err
	}

	photo, err := s.fileService.UploadCheckpointPhoto(ctx, req.ReservationID, "start", req.Photo, req.PhotoName)
	if err != nil {
		return reservation.ReservationResponse{}, err
	}

	var updated reservation.Reservation
	err = s.WithinTransaction(ctx, func(txCtx context.Context) error {
		r, err := s.ReservationRepository.GetForUpdate(txCtx, req.ReservationID)
		if err != nil {
			return fmt.Errorf("failed to get reservation: %w", err)
		}
		if err := r.StartUse(req.CallerID, reservation.CheckoutRecord{Mileage: req.Mileage, Photo: photo}, s.now()); err != nil {
			return err
		}

		updated, err = s.ReservationRepository.Update(txCtx, r)
		if err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		s.discardPhoto(ctx, photo)
		return reservation.ReservationResponse{}, err
	}

	return s.toResponse(ctx, updated), nil
}

// ReturnVehicle implements reservation.ReservationService.
func (s *ReservationServiceImpl) ReturnVehicle(ctx context.Context, req reservation.ReturnVehicleRequest) (reservation.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return reservation.ReservationResponse{}, err
	}

	record := reservation.ReturnRecord{
		Mileage:         req.Mileage,
		IsClean:         req.IsClean,
		ParkingLocation: req.ParkingLocation,
		ConditionNote:   req.ConditionNote,
	}

	current, err := s.ReservationRepository.GetByID(ctx, req.ReservationID)
	if err != nil {
		return reservation.ReservationResponse{}, fmt.Errorf("failed to get reservation: %w", err)
	}
	if err := s.checkReturn(current, req.CallerID, record); err != nil {
		return reservation.ReservationResponse{}, err
	}

	record.Photo, err = s.fileService.UploadCheckpointPhoto(ctx, req.ReservationID, "end", req.Photo, req.PhotoName)
	if err != nil {
		return reservation.ReservationResponse{}, err
	}

	var updated reservation.Reservation
	err = s.WithinTransaction(ctx, func(txCtx context.Context) error {
		r, err := s.ReservationRepository.GetForUpdate(txCtx, req.ReservationID)
		if err != nil {
			return fmt.Errorf("failed to get reservation: %w", err)
		}
		if err := s.checkReturn(r, req.CallerID, record); err != nil {
			return err
		}
		if err := r.Return(req.CallerID, record, s.now()); err != nil {
			return err
		}

		updated, err = s.ReservationRepository.Update(txCtx, r)
		if err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}
		// Last writer wins on the odometer
		if err := s.ResourceRepository.UpdateMileage(txCtx, r.ResourceID, req.Mileage); err != nil {
			return fmt.Errorf("failed to update resource mileage: %w", err)
		}
		return nil
	})
	if err != nil {
		s.discardPhoto(ctx, record.Photo)
		return reservation.ReservationResponse{}, err
	}

	return s.toResponse(ctx, updated), nil
}

// checkReturn dry-runs the transition on a copy and rejects an odometer
// reading below the pickup reading.
func (s *ReservationServiceImpl) checkReturn(r reservation.Reservation, callerID string, record reservation.ReturnRecord) error {
	if err := r.Return(callerID, record, s.now()); err != nil {
		return err
	}
	if r.StartMileage != nil && record.Mileage < *r.StartMileage {
		return reservation.ErrInvalidMileage
	}
	return nil
}

func (s *ReservationServiceImpl) discardPhoto(ctx context.Context, key string) {
	if err := s.fileService.DeleteFile(ctx, key); err != nil {
		slog.Warn("failed to remove orphaned checkpoint photo", "key", key, "error", err)
	}
}

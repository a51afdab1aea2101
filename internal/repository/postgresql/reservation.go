package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/database"
)

type reservationRepositoryImpl struct {
	db *database.DB
}

func NewReservationRepository(db *database.DB) reservation.ReservationRepository {
	return &reservationRepositoryImpl{db: db}
}

const reservationSelect = `
	SELECT rv.id, rv.resource_id, rv.requester_id, rv.start_at, rv.end_at, rv.purpose,
		   rv.status, rv.cancelled_at,
		   rv.vehicle_state, rv.start_mileage, rv.end_mileage, rv.start_photo, rv.end_photo,
		   rv.is_clean, rv.parking_location, rv.condition_note, rv.started_at, rv.returned_at,
		   rv.created_at, rv.updated_at,
		   u.name AS requester_name, rs.name AS resource_name
	FROM reservations rv
	JOIN users u ON rv.requester_id = u.id
	JOIN resources rs ON rv.resource_id = rs.id`

func scanReservation(row pgx.Row) (reservation.Reservation, error) {
	var rv reservation.Reservation
	var requesterName, resourceName string
	err := row.Scan(
		&rv.ID, &rv.ResourceID, &rv.RequesterID, &rv.StartAt, &rv.EndAt, &rv.Purpose,
		&rv.Status, &rv.CancelledAt,
		&rv.VehicleState, &rv.StartMileage, &rv.EndMileage, &rv.StartPhoto, &rv.EndPhoto,
		&rv.IsClean, &rv.ParkingLocation, &rv.ConditionNote, &rv.StartedAt, &rv.ReturnedAt,
		&rv.CreatedAt, &rv.UpdatedAt,
		&requesterName, &resourceName,
	)
	if err != nil {
		return reservation.Reservation{}, err
	}
	rv.RequesterName = &requesterName
	rv.ResourceName = &resourceName
	return rv, nil
}

func (r *reservationRepositoryImpl) getOne(ctx context.Context, query string, id string) (reservation.Reservation, error) {
	q := GetQuerier(ctx, r.db)

	rv, err := scanReservation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reservation.Reservation{}, reservation.ErrReservationNotFound
		}
		return reservation.Reservation{}, err
	}
	return rv, nil
}

// Create implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) Create(ctx context.Context, rv reservation.Reservation) (reservation.Reservation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reservations (
			resource_id, requester_id, start_at, end_at, purpose, status, vehicle_state,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rv.ResourceID, rv.RequesterID, rv.StartAt, rv.EndAt, rv.Purpose, rv.Status, rv.VehicleState,
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == pgExclusionViolation {
			return reservation.Reservation{}, reservation.ErrReservationConflict
		}
		return reservation.Reservation{}, err
	}

	return rv, nil
}

// GetByID implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) GetByID(ctx context.Context, id string) (reservation.Reservation, error) {
	return r.getOne(ctx, reservationSelect+` WHERE rv.id = $1`, id)
}

// GetForUpdate implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) GetForUpdate(ctx context.Context, id string) (reservation.Reservation, error) {
	return r.getOne(ctx, reservationSelect+` WHERE rv.id = $1 FOR UPDATE OF rv`, id)
}

// ListActive implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) ListActive(ctx context.Context, filter reservation.ReservationFilter) ([]reservation.Reservation, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`%s
		WHERE rv.status = 'active'
		  AND rv.resource_id = ANY($1::uuid[])
		  AND rv.start_at < $3 AND rv.end_at > $2
		ORDER BY rv.start_at
	`, reservationSelect)

	rows, err := q.Query(ctx, query, filter.ResourceIDs, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []reservation.Reservation
	for rows.Next() {
		rv, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Update implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) Update(ctx context.Context, rv reservation.Reservation) (reservation.Reservation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reservations
		SET status = $2, cancelled_at = $3,
			vehicle_state = $4, start_mileage = $5, end_mileage = $6,
			start_photo = $7, end_photo = $8, is_clean = $9,
			parking_location = $10, condition_note = $11,
			started_at = $12, returned_at = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		rv.ID, rv.Status, rv.CancelledAt,
		rv.VehicleState, rv.StartMileage, rv.EndMileage,
		rv.StartPhoto, rv.EndPhoto, rv.IsClean,
		rv.ParkingLocation, rv.ConditionNote,
		rv.StartedAt, rv.ReturnedAt,
	).Scan(&rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reservation.Reservation{}, reservation.ErrReservationNotFound
		}
		return reservation.Reservation{}, err
	}

	return rv, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/leave"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.requester_id, lr.leave_type,
		   lr.start_date, lr.end_date, lr.days, lr.reason,
		   lr.status, lr.approved_by, lr.approved_at,
		   lr.rejected_at, lr.rejection_reason, lr.cancelled_at,
		   lr.version, lr.created_at, lr.updated_at,
		   u.name AS requester_name
	FROM leave_requests lr
	JOIN users u ON lr.requester_id = u.id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	var requesterName string
	err := row.Scan(
		&req.ID, &req.RequesterID, &req.Type,
		&req.StartDate, &req.EndDate, &req.Days, &req.Reason,
		&req.Status, &req.ApprovedBy, &req.ApprovedAt,
		&req.RejectedAt, &req.RejectionReason, &req.CancelledAt,
		&req.Version, &req.CreatedAt, &req.UpdatedAt,
		&requesterName,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	req.RequesterName = &requesterName
	return req, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			requester_id, leave_type, start_date, end_date, days, reason,
			status, version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.RequesterID, request.Type, request.StartDate, request.EndDate, request.Days, request.Reason,
		request.Status, request.Version,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return req, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE TRUE"
	args := []interface{}{}
	argIndex := 1

	if filter.RequesterID != "" {
		whereClause += fmt.Sprintf(" AND lr.requester_id = $%d", argIndex)
		args = append(args, filter.RequesterID)
		argIndex++
	}

	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	// From/To select requests that intersect the window
	if filter.From != nil {
		whereClause += fmt.Sprintf(" AND lr.end_date >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		whereClause += fmt.Sprintf(" AND lr.start_date <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM leave_requests lr %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`%s
		%s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestSelect, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// LockRequester implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) LockRequester(ctx context.Context, requesterID string) error {
	q := GetQuerier(ctx, r.db)

	var lockedID string
	if err := q.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, requesterID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return err
	}
	return nil
}

// ListActiveByRequester implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListActiveByRequester(ctx context.Context, requesterID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveRequestSelect+`
		WHERE lr.requester_id = $1 AND lr.status IN ('pending', 'approved')
		ORDER BY lr.start_date
	`, requesterID)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// ListActiveInRange implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListActiveInRange(ctx context.Context, from, to time.Time, requesterID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + `
		WHERE lr.status IN ('pending', 'approved')
		  AND lr.start_date <= $2 AND lr.end_date >= $1`
	args := []interface{}{from, to}
	if requesterID != "" {
		query += ` AND lr.requester_id = $3`
		args = append(args, requesterID)
	}
	query += ` ORDER BY lr.start_date, lr.created_at`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// Transition implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Transition(ctx context.Context, request leave.LeaveRequest, fromStatus leave.Status, fromVersion int) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
			approved_by = $3,
			approved_at = $4,
			rejected_at = $5,
			rejection_reason = $6,
			cancelled_at = $7,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND status = $8 AND version = $9
		RETURNING version, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.Status,
		request.ApprovedBy, request.ApprovedAt,
		request.RejectedAt, request.RejectionReason,
		request.CancelledAt,
		fromStatus, fromVersion,
	).Scan(&request.Version, &request.UpdatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, err
		}
		// Nothing matched: either the row is gone or someone else moved it first
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leave_requests WHERE id = $1)`, request.ID).Scan(&exists); err != nil {
			return leave.LeaveRequest{}, err
		}
		if !exists {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	return request, nil
}

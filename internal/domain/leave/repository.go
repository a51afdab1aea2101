package leave

import (
	"context"
	"time"
)

// LeaveRequestFilter narrows list queries. Zero values mean "any".
type LeaveRequestFilter struct {
	RequesterID string
	Status      Status
	From        *time.Time
	To          *time.Time
	Page        int
	Limit       int
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// LockRequester takes a row lock on the requester for the rest of the
	// surrounding transaction, serializing their submissions. Returns
	// user.ErrUserNotFound when the requester does not exist.
	LockRequester(ctx context.Context, requesterID string) error
	// ListActiveByRequester returns the requester's pending and approved requests.
	ListActiveByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	// ListActiveInRange returns pending and approved requests intersecting [from, to].
	ListActiveInRange(ctx context.Context, from, to time.Time, requesterID string) ([]LeaveRequest, error)
	// Transition moves the request to request.Status only if it is still at
	// fromStatus and fromVersion, returning ErrLeaveRequestAlreadyProcessed otherwise.
	Transition(ctx context.Context, request LeaveRequest, fromStatus Status, fromVersion int) (LeaveRequest, error)
}

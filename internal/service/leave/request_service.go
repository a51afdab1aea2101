package leave

import (
	"context"
	"fmt"

	"github.com/sarang-church/groupware-backend-go/internal/domain/leave"
)

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	days := leave.ChargeableDays(req.Start, req.End, req.Type, l.holidays)
	if days <= 0 {
		return leave.LeaveRequestResponse{}, leave.ErrNoChargeableDays
	}

	var created leave.LeaveRequest
	err := l.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := l.LeaveRequestRepository.LockRequester(txCtx, req.RequesterID); err != nil {
			return fmt.Errorf("failed to lock requester: %w", err)
		}

		existing, err := l.LeaveRequestRepository.ListActiveByRequester(txCtx, req.RequesterID)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if conflict, ok := leave.FirstOverlap(existing, req.Start, req.End); ok {
			return &leave.OverlapError{
				ConflictID:    conflict.ID,
				ConflictStart: conflict.StartDate,
				ConflictEnd:   conflict.EndDate,
			}
		}

		if req.Type.IsDeductible() {
			requester, err := l.UserRepository.GetByID(txCtx, req.RequesterID)
			if err != nil {
				return fmt.Errorf("failed to get requester: %w", err)
			}
			if remaining := requester.LeaveBalance.Remaining(); days > remaining {
				return &leave.InsufficientBalanceError{Remaining: remaining, Requested: days}
			}
		}

		created, err = l.LeaveRequestRepository.Create(txCtx, leave.LeaveRequest{
			RequesterID: req.RequesterID,
			Type:        req.Type,
			StartDate:   req.Start,
			EndDate:     req.End,
			Days:        days,
			Reason:      req.Reason,
			Status:      leave.StatusPending,
			Version:     1,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, requestID, approverID string) (leave.LeaveRequestResponse, error) {
	if err := l.checkApprover(ctx, approverID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	now := l.now()
	updated, err := l.decide(ctx, requestID, approverID, func(r *leave.LeaveRequest) {
		r.Status = leave.StatusApproved
		r.ApprovedBy = &approverID
		r.ApprovedAt = &now
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(updated), nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := l.checkApprover(ctx, req.ApproverID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	now := l.now()
	updated, err := l.decide(ctx, req.RequestID, req.ApproverID, func(r *leave.LeaveRequest) {
		r.Status = leave.StatusRejected
		r.ApprovedBy = &req.ApproverID
		r.RejectedAt = &now
		r.RejectionReason = &req.Reason
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(updated), nil
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, requestID, callerID string) (leave.LeaveRequestResponse, error) {
	var updated leave.LeaveRequest
	err := l.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return fmt.Errorf("failed to get leave request: %w", err)
		}
		if request.RequesterID != callerID {
			return leave.ErrNotRequester
		}
		if !request.Status.CanTransitionTo(leave.StatusCancelled) {
			return leave.ErrInvalidTransition
		}

		now := l.now()
		next := request
		next.Status = leave.StatusCancelled
		next.CancelledAt = &now

		updated, err = l.apply(txCtx, request, next)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(updated), nil
}

func (l *LeaveServiceImpl) checkApprover(ctx context.Context, approverID string) error {
	approver, err := l.UserRepository.GetByID(ctx, approverID)
	if err != nil {
		return fmt.Errorf("failed to get approver: %w", err)
	}
	if !approver.CanApprove() {
		return leave.ErrNotApprover
	}
	return nil
}

// decide re-reads the request inside a transaction and applies an approver's
// decision to a still pending request.
func (l *LeaveServiceImpl) decide(ctx context.Context, requestID, approverID string, mutate func(*leave.LeaveRequest)) (leave.LeaveRequest, error) {
	var updated leave.LeaveRequest
	err := l.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return fmt.Errorf("failed to get leave request: %w", err)
		}
		if request.RequesterID == approverID {
			return leave.ErrSelfApproval
		}
		if request.Status != leave.StatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		next := request
		mutate(&next)

		updated, err = l.apply(txCtx, request, next)
		return err
	})
	return updated, err
}

// apply writes the status change conditioned on the version read, then moves
// the requester's used days by the transition's balance delta.
func (l *LeaveServiceImpl) apply(txCtx context.Context, current, next leave.LeaveRequest) (leave.LeaveRequest, error) {
	updated, err := l.LeaveRequestRepository.Transition(txCtx, next, current.Status, current.Version)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	if delta := current.BalanceDelta(next.Status); delta != 0 {
		if _, err := l.UserRepository.AdjustUsedLeaveDays(txCtx, current.RequesterID, delta); err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to adjust used leave days: %w", err)
		}
	}

	return updated, nil
}

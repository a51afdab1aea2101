package leave

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrNoChargeableDays             = errors.New("requested range has no chargeable days")
	ErrOverlappingLeave             = errors.New("leave request overlaps an existing request")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrSelfApproval                 = errors.New("requester cannot approve or reject own request")
	ErrNotApprover                  = errors.New("user is not allowed to approve leave")
	ErrNotRequester                 = errors.New("only the requester can cancel a leave request")
	ErrInvalidTransition            = errors.New("leave request cannot move to the requested status")
)

// OverlapError carries the dates of the request that blocks a submission.
type OverlapError struct {
	ConflictID    string
	ConflictStart time.Time
	ConflictEnd   time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s ~ %s", ErrOverlappingLeave,
		e.ConflictStart.Format("2006-01-02"), e.ConflictEnd.Format("2006-01-02"))
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlappingLeave
}

// InsufficientBalanceError carries the balance left and the amount asked for.
type InsufficientBalanceError struct {
	Remaining float64
	Requested float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: remaining %.1f, requested %.1f", ErrInsufficientBalance, e.Remaining, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

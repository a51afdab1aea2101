package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// AdjustUsedLeaveDays adds delta (negative to give days back) to used_leave_days
	// in one atomic statement and returns the balance after the change.
	AdjustUsedLeaveDays(ctx context.Context, id string, delta float64) (LeaveBalance, error)
	SetLeaveAllotment(ctx context.Context, id string, totalDays float64) (LeaveBalance, error)
}

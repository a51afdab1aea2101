package leave

import (
	"context"

	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
)

type LeaveService interface {
	// Preview
	ChargeableDays(ctx context.Context, req ChargeableDaysRequest) (ChargeableDaysResponse, error)
	Calendar(ctx context.Context, req CalendarRequest) ([]CalendarDayResponse, error)
	// Workflow
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, requestID, approverID string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req RejectLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, requestID, callerID string) (LeaveRequestResponse, error)
	// Queries
	Get(ctx context.Context, requestID, callerID string) (LeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	// Balance
	Balance(ctx context.Context, userID string) (user.LeaveBalanceResponse, error)
	SetAllotment(ctx context.Context, req user.SetLeaveAllotmentRequest) (user.LeaveBalanceResponse, error)
}

package user

import (
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	Name         string               `json:"name"`
	Role         string               `json:"role"`
	Position     *string              `json:"position,omitempty"`
	LeaveBalance LeaveBalanceResponse `json:"leave_balance"`
	CreatedAt    time.Time            `json:"created_at"`
}

type LeaveBalanceResponse struct {
	TotalDays     float64 `json:"total_days"`
	UsedDays      float64 `json:"used_days"`
	RemainingDays float64 `json:"remaining_days"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.Remaining(),
	}
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         string(u.Role),
		Position:     u.Position,
		LeaveBalance: NewLeaveBalanceResponse(u.LeaveBalance),
		CreatedAt:    u.CreatedAt,
	}
}

type SetLeaveAllotmentRequest struct {
	UserID    string  `json:"-"`
	TotalDays float64 `json:"total_days"`
}

func (r *SetLeaveAllotmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	if r.TotalDays < 0 {
		errs.Add("total_days", "total_days must not be negative")
	}
	// Allotments follow the 0.5 day granularity of leave requests
	if r.TotalDays*2 != float64(int64(r.TotalDays*2)) {
		errs.Add("total_days", "total_days must be a multiple of 0.5")
	}

	return errs.OrNil()
}

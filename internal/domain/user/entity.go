package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Office administrator - full access
	RoleApprover Role = "approver" // Can approve leave requests
	RoleStaff    Role = "staff"    // Regular church staff
)

// LeaveBalance is the leave allotment embedded in a user profile.
type LeaveBalance struct {
	TotalDays float64
	UsedDays  float64
}

// Remaining is what a deductible request may still consume.
func (b LeaveBalance) Remaining() float64 {
	return b.TotalDays - b.UsedDays
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	Role         Role
	Position     *string
	LeaveBalance LeaveBalance
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an office administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can approve requests
func (u *User) CanApprove() bool {
	return HasPermission(u.Role, PermissionLeaveApprove)
}
